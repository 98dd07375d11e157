package cookiejar

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Entry is a single stored cookie. A zero ExpiresAt marks a session cookie
// that lives until it is replaced or the jar is cleared.
type Entry struct {
	Name      string
	Value     string
	Domain    string
	Path      string
	Secure    bool
	HTTPOnly  bool
	ExpiresAt time.Time
}

func (e Entry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && e.ExpiresAt.Before(now)
}

// Jar is a per-host cookie cache. Within a host, cookies are keyed by
// (name, path): saving a cookie with an existing key replaces the old entry.
// Expired entries are purged lazily on the next read or write for the host
// and are never returned to a caller.
//
// Jar implements http.CookieJar so it can be plugged straight into an
// http.Client.
type Jar struct {
	mu    sync.Mutex
	store map[string][]Entry
	now   func() time.Time
}

// New creates an empty Jar.
func New() *Jar {
	return &Jar{
		store: make(map[string][]Entry),
		now:   time.Now,
	}
}

// Save stores the incoming cookies for host, replacing entries that share
// (name, path), then purges expired entries for that host.
func (j *Jar) Save(host string, incoming []Entry) {
	j.mu.Lock()
	defer j.mu.Unlock()

	current := j.store[host]
	for _, c := range incoming {
		if c.Name == "" {
			continue
		}
		kept := current[:0]
		for _, old := range current {
			if old.Name != c.Name || old.Path != c.Path {
				kept = append(kept, old)
			}
		}
		current = append(kept, c)
	}

	j.store[host] = withoutExpired(current, j.now())
}

// Load purges expired entries for host and returns copies of the remainder.
func (j *Jar) Load(host string) []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()

	live := withoutExpired(j.store[host], j.now())
	j.store[host] = live

	out := make([]Entry, len(live))
	copy(out, live)
	return out
}

// Dump renders the host's cookies for diagnostics. Values are redacted.
func (j *Jar) Dump(host string) string {
	entries := j.Load(host)
	if len(entries) == 0 {
		return "(no cookies stored)"
	}

	lines := make([]string, len(entries))
	for i, c := range entries {
		lines[i] = fmt.Sprintf("%s=<redacted>; domain=%s; path=%s; secure=%t; httpOnly=%t",
			c.Name, c.Domain, c.Path, c.Secure, c.HTTPOnly)
	}
	return strings.Join(lines, "\n")
}

// Clear drops all cookies for all hosts.
func (j *Jar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.store = make(map[string][]Entry)
}

// SetCookies implements http.CookieJar, storing response cookies for the
// request host.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}

	now := j.now()
	entries := make([]Entry, 0, len(cookies))
	for _, c := range cookies {
		entries = append(entries, Entry{
			Name:      c.Name,
			Value:     c.Value,
			Domain:    defaultString(c.Domain, u.Hostname()),
			Path:      defaultString(c.Path, "/"),
			Secure:    c.Secure,
			HTTPOnly:  c.HttpOnly,
			ExpiresAt: expiry(c, now),
		})
	}

	j.Save(u.Hostname(), entries)
}

// Cookies implements http.CookieJar, returning the live cookies to attach to
// a request for the URL's host.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	entries := j.Load(u.Hostname())

	out := make([]*http.Cookie, 0, len(entries))
	for _, e := range entries {
		out = append(out, &http.Cookie{Name: e.Name, Value: e.Value})
	}
	return out
}

func withoutExpired(entries []Entry, now time.Time) []Entry {
	live := entries[:0]
	for _, e := range entries {
		if !e.expired(now) {
			live = append(live, e)
		}
	}
	return live
}

// expiry resolves the effective expiry of a response cookie. Max-Age takes
// precedence over Expires; a negative Max-Age is an immediate deletion.
func expiry(c *http.Cookie, now time.Time) time.Time {
	if c.MaxAge > 0 {
		return now.Add(time.Duration(c.MaxAge) * time.Second)
	}
	if c.MaxAge < 0 {
		return now.Add(-time.Second)
	}
	return c.Expires
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
