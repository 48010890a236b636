package errors

import (
	"errors"
	"fmt"
)

// Kind represents the category of a scrape error
type Kind string

const (
	// KindNetwork represents transport-level failures (timeout, refused connection)
	KindNetwork Kind = "network"
	// KindHTTP represents non-2xx responses
	KindHTTP Kind = "http_status"
	// KindPolicyBlocked represents URLs disallowed by robots.txt
	KindPolicyBlocked Kind = "policy_blocked"
	// KindExtraction represents selector failures on malformed markup
	KindExtraction Kind = "extraction"
	// KindIO represents output file failures
	KindIO Kind = "io"
	// KindConfiguration represents invalid or unknown configuration
	KindConfiguration Kind = "configuration"
)

// ScrapeError is an error with source and URL context
type ScrapeError struct {
	Kind       Kind
	Source     string
	URL        string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	msg := fmt.Sprintf("[%s]", e.Kind)
	if e.Source != "" {
		msg += " " + e.Source
	}
	if e.URL != "" {
		msg += " " + e.URL
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failed operation may be retried
func (e *ScrapeError) Retryable() bool {
	switch e.Kind {
	case KindNetwork, KindHTTP:
		return true
	default:
		return false
	}
}

// NewNetwork creates a transport error
func NewNetwork(source, url string, err error) *ScrapeError {
	return &ScrapeError{Kind: KindNetwork, Source: source, URL: url, Err: err}
}

// NewHTTP creates a non-2xx status error
func NewHTTP(source, url string, status int) *ScrapeError {
	return &ScrapeError{
		Kind:       KindHTTP,
		Source:     source,
		URL:        url,
		StatusCode: status,
		Message:    fmt.Sprintf("unexpected status code: %d", status),
	}
}

// NewPolicyBlocked creates a robots.txt refusal
func NewPolicyBlocked(source, url string) *ScrapeError {
	return &ScrapeError{Kind: KindPolicyBlocked, Source: source, URL: url, Message: "disallowed by robots.txt"}
}

// NewExtraction creates a selector failure
func NewExtraction(source, url, message string, err error) *ScrapeError {
	return &ScrapeError{Kind: KindExtraction, Source: source, URL: url, Message: message, Err: err}
}

// NewIO creates an output file error
func NewIO(path string, err error) *ScrapeError {
	return &ScrapeError{Kind: KindIO, URL: path, Err: err}
}

// NewConfiguration creates a configuration error
func NewConfiguration(message string) *ScrapeError {
	return &ScrapeError{Kind: KindConfiguration, Message: message}
}

// IsKind reports whether err is a ScrapeError of the given kind
func IsKind(err error, kind Kind) bool {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

// IsPolicyBlocked reports whether err is a robots.txt refusal
func IsPolicyBlocked(err error) bool {
	return IsKind(err, KindPolicyBlocked)
}

// IsIO reports whether err is an output file error
func IsIO(err error) bool {
	return IsKind(err, KindIO)
}
