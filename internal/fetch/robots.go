package fetch

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"

	"tmalin/leadharvest/logger"
)

// RobotsGate checks robots.txt before the first fetch to a host.
// Results are cached for the lifetime of the gate (one run).
type RobotsGate struct {
	mu        sync.Mutex
	hosts     map[string]*robotstxt.RobotsData // nil entry = robots.txt unavailable, allow
	client    *http.Client
	userAgent string
}

// NewRobotsGate creates a robots.txt gate for the given user agent
func NewRobotsGate(userAgent string) *RobotsGate {
	return &RobotsGate{
		hosts:     make(map[string]*robotstxt.RobotsData),
		client:    &http.Client{Timeout: 10 * time.Second},
		userAgent: userAgent,
	}
}

// Allowed reports whether the URL may be fetched. A missing or unreadable
// robots.txt allows everything; an unparseable URL is an error, not a
// policy decision.
func (g *RobotsGate) Allowed(rawURL string) (bool, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false, fmt.Errorf("robots check: unparseable URL %q", rawURL)
	}
	base := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)

	g.mu.Lock()
	robots, cached := g.hosts[base]
	g.mu.Unlock()

	if !cached {
		robots = g.fetchRobots(base)
		g.mu.Lock()
		g.hosts[base] = robots
		g.mu.Unlock()
	}

	if robots == nil {
		return true, nil
	}
	path := parsed.Path
	if path == "" {
		path = "/"
	}
	// Rules like "Disallow: /*?" match on the query string too.
	if parsed.RawQuery != "" {
		path += "?" + parsed.RawQuery
	}
	return robots.TestAgent(path, g.userAgent), nil
}

func (g *RobotsGate) fetchRobots(base string) *robotstxt.RobotsData {
	resp, err := g.client.Get(base + "/robots.txt")
	if err != nil {
		logger.Debug("robots.txt unavailable for %s: %v", base, err)
		return nil
	}
	defer resp.Body.Close()

	robots, err := robotstxt.FromResponse(resp)
	if err != nil {
		logger.Debug("robots.txt unparsable for %s: %v", base, err)
		return nil
	}
	return robots
}
