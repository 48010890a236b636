package scraper

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	digitPattern = regexp.MustCompile(`\D`)
	spacePattern = regexp.MustCompile(`\s+`)

	// Leading list numbering like "1. " or "12 " that directory pages
	// prepend to business names.
	numberingPattern = regexp.MustCompile(`^\d+\.?\s*`)

	// Text that shows up in listing slots when a page has no real
	// results. A "name" matching any of these is not a business.
	invalidNamePatterns = []string{
		"no matches", "no results", "try again",
		"search", "filter", "loading", "error",
	}
)

// NormalizeEmail lowercases and validates an email address; invalid
// input is dropped rather than exported.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !emailPattern.MatchString(email) {
		return ""
	}
	return email
}

// NormalizePhone formats 10 and 11 digit US numbers as (XXX) XXX-XXXX.
// Anything else is kept as entered.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	digits := digitPattern.ReplaceAllString(phone, "")
	switch {
	case len(digits) == 10:
		return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
	case len(digits) == 11 && digits[0] == '1':
		return fmt.Sprintf("+1 (%s) %s-%s", digits[1:4], digits[4:7], digits[7:])
	}
	return phone
}

// CleanName strips list numbering and surrounding noise from a scraped
// business name. Returns "" when the text is not a plausible name.
func CleanName(name string) string {
	name = numberingPattern.ReplaceAllString(strings.TrimSpace(name), "")
	name = spacePattern.ReplaceAllString(name, " ")
	if len(name) < 3 {
		return ""
	}
	lower := strings.ToLower(name)
	for _, pattern := range invalidNamePatterns {
		if strings.Contains(lower, pattern) {
			return ""
		}
	}
	return name
}

// Normalize applies field-level cleanup to a freshly extracted record
func (r *Record) Normalize() {
	r.Name = CleanName(r.Name)
	r.Email = NormalizeEmail(r.Email)
	if r.Phone != "" {
		r.Phone = NormalizePhone(r.Phone)
	}
	r.Website = strings.TrimSpace(r.Website)
	r.Address = spacePattern.ReplaceAllString(strings.TrimSpace(r.Address), " ")
	r.City = strings.TrimSpace(r.City)
	r.State = strings.TrimSpace(r.State)
	r.ZipCode = strings.TrimSpace(r.ZipCode)
	r.Specialty = strings.TrimSpace(r.Specialty)
}
