package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
)

type fakeIdentity struct {
	user      *models.User
	meErr     error
	logoutErr error
	logouts   int
}

func (f *fakeIdentity) Me(ctx context.Context) (*models.User, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.user, nil
}

func (f *fakeIdentity) Logout(ctx context.Context) error {
	f.logouts++
	return f.logoutErr
}

func TestCheckAuthenticated(t *testing.T) {
	var phases []Phase
	state := NewState(&fakeIdentity{user: &models.User{ID: "u1", Role: models.RoleAdmin}}, "", nil)
	state.Subscribe(func(s Snapshot) { phases = append(phases, s.Phase) })

	assert.True(t, state.Snapshot().IsLoading)
	assert.Equal(t, PhaseInit, state.Snapshot().Phase)

	snap := state.Check(context.Background())

	assert.True(t, snap.IsAuthenticated)
	assert.False(t, snap.IsLoading)
	assert.Equal(t, "u1", snap.User.ID)
	assert.Equal(t, []Phase{PhaseChecking, PhaseAuthenticated}, phases)
}

func TestCheckAnonymousClearsUser(t *testing.T) {
	identity := &fakeIdentity{user: &models.User{ID: "u1"}}
	state := NewState(identity, "/login", nil)
	state.Check(context.Background())

	identity.meErr = &epdapi.HTTPError{Status: http.StatusUnauthorized, Message: "Unauthorized"}
	snap := state.Check(context.Background())

	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.User)
	assert.Equal(t, PhaseAnonymous, snap.Phase)
	assert.False(t, snap.IsLoading)
}

func TestLogoutRedirectsEvenWhenBackendFails(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	identity := &fakeIdentity{
		user:      &models.User{ID: "u1"},
		logoutErr: &epdapi.TransportError{Method: http.MethodPost, Path: "/auth/logout", Err: errors.New("connection refused")},
	}
	state := NewState(identity, "/login", zap.New(core))
	state.Check(context.Background())

	target := state.Logout(context.Background())

	assert.Equal(t, "/login", target)
	assert.Nil(t, state.User())
	assert.False(t, state.Snapshot().IsAuthenticated)
	assert.Equal(t, 1, identity.logouts)
	assert.Equal(t, 1, logs.FilterMessage("backend logout failed").Len())
}

func newGatedEngine(identity Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Bind())
	engine.GET("/login", func(c *gin.Context) { c.String(http.StatusOK, "login") })
	gated := engine.Group("/", Gate(identity, "/login", nil))
	gated.GET("/products", func(c *gin.Context) {
		c.String(http.StatusOK, FromContext(c).User().Name)
	})
	return engine
}

func TestGateRedirectsAnonymous(t *testing.T) {
	engine := newGatedEngine(&fakeIdentity{meErr: errors.New("no session")})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestGateLetsAuthenticatedThrough(t *testing.T) {
	engine := newGatedEngine(&fakeIdentity{user: &models.User{ID: "u1", Name: "Ana"}})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ana", rec.Body.String())
}

func TestRelayCookiesOnce(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Bind())
	engine.GET("/", func(c *gin.Context) {
		creds := epdapi.CredentialsFrom(c.Request.Context())
		require.NotNil(t, creds)
		assert.Len(t, creds.Cookies(), 1)
		creds.Absorb([]*http.Cookie{{Name: "session", Value: "rotated", Domain: "api.example.com"}})
		RelayCookies(c)
		RelayCookies(c)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "old"})
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "rotated", cookies[0].Value)
	assert.Empty(t, cookies[0].Domain)
	assert.Equal(t, "/", cookies[0].Path)
}
