package resources

import (
	"context"
	"errors"
	"net/http"

	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
)

// AuthService covers the session endpoints.
type AuthService struct {
	client *epdapi.Client
}

// NewAuthService wires an auth facade.
func NewAuthService(client *epdapi.Client) *AuthService {
	return &AuthService{client: client}
}

// Me returns the user the forwarded session belongs to.
func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	user, err := epdapi.Get[models.User](ctx, s.client, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("empty identity response")
	}
	return user, nil
}

// Logout asks the backend to invalidate the session cookie.
func (s *AuthService) Logout(ctx context.Context) error {
	_, err := s.client.Execute(ctx, "/auth/logout", epdapi.RequestOptions{Method: http.MethodPost}, nil)
	return err
}

// LoginURL is where the browser starts the backend's single sign-on flow.
func (s *AuthService) LoginURL() string {
	return s.client.BaseURL() + "/auth/keycloak/login"
}
