package fetch

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func allowed(t *testing.T, gate *RobotsGate, url string) bool {
	t.Helper()
	ok, err := gate.Allowed(url)
	assert.NoError(t, err)
	return ok
}

func TestRobotsGateDisallow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nDisallow: /search\n"))
	}))
	defer server.Close()

	gate := NewRobotsGate("test-agent")

	assert.False(t, allowed(t, gate, server.URL+"/search"))
	assert.True(t, allowed(t, gate, server.URL+"/listing"))
}

func TestRobotsGateQueryStringRules(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nDisallow: /search?q=\n"))
	}))
	defer server.Close()

	gate := NewRobotsGate("test-agent")

	assert.False(t, allowed(t, gate, server.URL+"/search?q=designer"))
	assert.True(t, allowed(t, gate, server.URL+"/search"))
}

func TestRobotsGateFetchedOncePerHost(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("User-agent: *\nAllow: /\n"))
	}))
	defer server.Close()

	gate := NewRobotsGate("test-agent")
	for i := 0; i < 5; i++ {
		assert.True(t, allowed(t, gate, server.URL+"/page"))
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestRobotsGateUnavailableAllows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	gate := NewRobotsGate("test-agent")
	assert.True(t, allowed(t, gate, server.URL+"/anything"))
}

func TestRobotsGateInvalidURL(t *testing.T) {
	gate := NewRobotsGate("test-agent")

	ok, err := gate.Allowed("not a url")
	assert.Error(t, err)
	assert.False(t, ok)
}
