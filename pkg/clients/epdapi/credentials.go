package epdapi

import (
	"context"
	"net/http"
	"sync"
	"time"
)

type credentialsKey struct{}

// Credentials carries the browser's session cookies for the lifetime of one
// dashboard request. Cookies the backend sets are recorded so the caller can
// relay them to the browser, and so later calls in the same request see them.
type Credentials struct {
	mu       sync.Mutex
	cookies  map[string]*http.Cookie
	order    []string
	received []*http.Cookie
}

// NewCredentials seeds credentials from the cookies of an incoming request.
func NewCredentials(cookies []*http.Cookie) *Credentials {
	c := &Credentials{cookies: make(map[string]*http.Cookie, len(cookies))}
	for _, cookie := range cookies {
		c.set(cookie)
	}
	return c
}

// WithCredentials attaches creds to ctx.
func WithCredentials(ctx context.Context, creds *Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, creds)
}

// CredentialsFrom returns the credentials attached to ctx, or nil.
func CredentialsFrom(ctx context.Context) *Credentials {
	creds, _ := ctx.Value(credentialsKey{}).(*Credentials)
	return creds
}

// Cookies returns the cookies to send on the next backend request.
func (c *Credentials) Cookies() []*http.Cookie {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*http.Cookie, 0, len(c.order))
	for _, name := range c.order {
		if cookie, ok := c.cookies[name]; ok {
			out = append(out, &http.Cookie{Name: cookie.Name, Value: cookie.Value})
		}
	}
	return out
}

// Received returns every cookie the backend set during this request, in order.
func (c *Credentials) Received() []*http.Cookie {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*http.Cookie(nil), c.received...)
}

// Absorb records cookies set by a backend response. A cookie that expires is
// dropped from what later requests send.
func (c *Credentials) Absorb(cookies []*http.Cookie) {
	if c == nil || len(cookies) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, cookie := range cookies {
		c.received = append(c.received, cookie)
		if cookie.MaxAge < 0 || cookie.Value == "" || (!cookie.Expires.IsZero() && cookie.Expires.Before(time.Now())) {
			c.remove(cookie.Name)
			continue
		}
		c.set(cookie)
	}
}

// Clear forgets every cookie so no further request carries the session.
func (c *Credentials) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cookies = make(map[string]*http.Cookie)
	c.order = nil
}

func (c *Credentials) set(cookie *http.Cookie) {
	if _, exists := c.cookies[cookie.Name]; !exists {
		c.order = append(c.order, cookie.Name)
	}
	c.cookies[cookie.Name] = cookie
}

func (c *Credentials) remove(name string) {
	if _, exists := c.cookies[name]; !exists {
		return
	}
	delete(c.cookies, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
