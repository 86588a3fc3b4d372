package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
)

const (
	stateKey   = "session.state"
	relayedKey = "session.relayed"
)

// Bind attaches the browser's cookies to the request context so every
// backend call made while serving it carries them.
func Bind() gin.HandlerFunc {
	return func(c *gin.Context) {
		if epdapi.CredentialsFrom(c.Request.Context()) == nil {
			creds := epdapi.NewCredentials(c.Request.Cookies())
			c.Request = c.Request.WithContext(epdapi.WithCredentials(c.Request.Context(), creds))
		}
		c.Next()
	}
}

// Gate checks the session once per request and sends anonymous users to the
// login path. The checked State is available through FromContext.
func Gate(identity Identity, loginPath string, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		state := NewState(identity, loginPath, logger)
		snap := state.Check(c.Request.Context())
		c.Set(stateKey, state)

		if !snap.IsLoading && !snap.IsAuthenticated && c.Request.URL.Path != state.LoginPath() {
			RelayCookies(c)
			c.Redirect(http.StatusFound, state.LoginPath())
			c.Abort()
			return
		}
		c.Next()
	}
}

// FromContext returns the session checked by Gate, or nil.
func FromContext(c *gin.Context) *State {
	value, ok := c.Get(stateKey)
	if !ok {
		return nil
	}
	state, _ := value.(*State)
	return state
}

// RelayCookies copies every cookie the backend set during this request onto
// the dashboard response. The backend's domain is dropped so the browser
// scopes them to the dashboard host. Cookies already relayed are skipped.
func RelayCookies(c *gin.Context) {
	received := epdapi.CredentialsFrom(c.Request.Context()).Received()
	done := c.GetInt(relayedKey)
	if done >= len(received) {
		return
	}
	c.Set(relayedKey, len(received))

	for _, cookie := range received[done:] {
		relayed := *cookie
		relayed.Domain = ""
		if relayed.Path == "" {
			relayed.Path = "/"
		}
		http.SetCookie(c.Writer, &relayed)
	}
}
