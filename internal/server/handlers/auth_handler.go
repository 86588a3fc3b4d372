package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/epd-dashboard/internal/config"
	"github.com/mamadbah2/epd-dashboard/internal/service/resources"
	"github.com/mamadbah2/epd-dashboard/internal/session"
	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
)

// AuthHandler serves the login entry point and logout.
type AuthHandler struct {
	auth      *resources.AuthService
	loginPath string
	logger    *zap.Logger
}

// NewAuthHandler constructs the auth HTTP handler.
func NewAuthHandler(auth *resources.AuthService, cfg config.SessionConfig, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{auth: auth, loginPath: cfg.LoginPath, logger: logger}
}

// Login sends a browser that already has a valid backend session to the
// dashboard, and everyone else to the backend's single sign-on flow.
func (h *AuthHandler) Login(c *gin.Context) {
	_, err := h.auth.Me(c.Request.Context())
	switch {
	case err == nil:
		session.RelayCookies(c)
		c.Redirect(http.StatusFound, "/")
		return
	case errors.Is(err, epdapi.ErrMissingBaseURL):
		h.logger.Error("backend url missing, cannot start login")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server misconfiguration"})
		return
	case !epdapi.IsUnauthorized(err):
		h.logger.Warn("failed to verify session against backend", zap.Error(err))
	}

	loginURL := h.auth.LoginURL()
	h.logger.Info("redirecting to single sign-on", zap.String("url", loginURL))
	c.Redirect(http.StatusFound, loginURL)
}

// Logout ends the session and always lands on the login path.
func (h *AuthHandler) Logout(c *gin.Context) {
	state := session.FromContext(c)
	if state == nil {
		state = session.NewState(h.auth, h.loginPath, h.logger)
	}

	target := state.Logout(c.Request.Context())
	epdapi.CredentialsFrom(c.Request.Context()).Clear()

	session.RelayCookies(c)
	c.Redirect(http.StatusSeeOther, target)
}
