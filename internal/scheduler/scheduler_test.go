package scheduler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/epd-dashboard/internal/config"
	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
)

type targetFunc func(ctx context.Context) (*models.User, error)

func (f targetFunc) Me(ctx context.Context) (*models.User, error) { return f(ctx) }

func TestRunOnceClassifiesErrors(t *testing.T) {
	var next error
	s := NewScheduler(config.ProbeConfig{}, targetFunc(func(context.Context) (*models.User, error) {
		return nil, next
	}), nil)

	assert.Nil(t, s.Status())

	next = &epdapi.HTTPError{Status: http.StatusUnauthorized, Message: "Unauthorized"}
	assert.True(t, s.RunOnce(context.Background()).Reachable)

	next = &epdapi.TransportError{Method: http.MethodGet, Path: "/auth/me", Err: errors.New("connection refused")}
	status := s.RunOnce(context.Background())
	assert.False(t, status.Reachable)
	assert.Equal(t, "the EPD backend could not be reached", status.Error)

	require.NotNil(t, s.Status())
	assert.False(t, s.Status().Reachable)
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	s := NewScheduler(config.ProbeConfig{CronSchedule: "not a schedule"}, targetFunc(func(context.Context) (*models.User, error) {
		return nil, nil
	}), nil)

	assert.Error(t, s.Start())
}

func TestStartProbesImmediately(t *testing.T) {
	called := make(chan struct{}, 1)
	s := NewScheduler(config.ProbeConfig{CronSchedule: "@every 1h"}, targetFunc(func(context.Context) (*models.User, error) {
		select {
		case called <- struct{}{}:
		default:
		}
		return &models.User{ID: "probe"}, nil
	}), nil)

	require.NoError(t, s.Start())
	defer s.Stop()

	<-called
	assert.Eventually(t, func() bool {
		st := s.Status()
		return st != nil && st.Reachable
	}, time.Second, 10*time.Millisecond)
}
