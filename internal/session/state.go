// Package session holds who the current dashboard user is, as reported by
// the backend for the cookies the browser forwarded.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
)

// Phase is the lifecycle position of a session check.
type Phase string

const (
	PhaseInit          Phase = "init"
	PhaseChecking      Phase = "checking"
	PhaseAuthenticated Phase = "authenticated"
	PhaseAnonymous     Phase = "anonymous"
)

// Identity is the backend surface the session needs.
type Identity interface {
	Me(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
}

// Snapshot is a consistent view of the session.
type Snapshot struct {
	User            *models.User
	IsAuthenticated bool
	IsLoading       bool
	Phase           Phase
}

// State is the single owner of the current user. Everything else reads it
// through Snapshot or changes it through Check and Logout.
type State struct {
	mu        sync.Mutex
	identity  Identity
	loginPath string
	logger    *zap.Logger

	user      *models.User
	phase     Phase
	loading   bool
	observers []func(Snapshot)
}

// NewState returns a session in the init phase, still loading.
func NewState(identity Identity, loginPath string, logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loginPath == "" {
		loginPath = "/login"
	}
	return &State{
		identity:  identity,
		loginPath: loginPath,
		logger:    logger,
		phase:     PhaseInit,
		loading:   true,
	}
}

// Check asks the backend who the user is. It can be called again to
// revalidate; only the first call clears the initial loading flag.
func (s *State) Check(ctx context.Context) Snapshot {
	s.transition(func() { s.phase = PhaseChecking })

	user, err := s.identity.Me(ctx)
	if err != nil {
		s.logger.Warn("session check failed, user likely not logged in", zap.Error(err))
	}

	return s.transition(func() {
		if err != nil {
			s.user = nil
			s.phase = PhaseAnonymous
		} else {
			s.user = user
			s.phase = PhaseAuthenticated
		}
		s.loading = false
	})
}

// Logout forgets the user right away, asks the backend to end the session and
// returns where the browser must go next. A backend failure never changes
// the outcome.
func (s *State) Logout(ctx context.Context) string {
	s.transition(func() {
		s.user = nil
		s.phase = PhaseAnonymous
		s.loading = false
	})

	if err := s.identity.Logout(ctx); err != nil {
		s.logger.Error("backend logout failed", zap.Error(err))
	} else {
		s.logger.Info("backend logout succeeded")
	}

	return s.loginPath
}

// Snapshot returns the current session view.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// User returns the signed-in user or nil.
func (s *State) User() *models.User {
	return s.Snapshot().User
}

// LoginPath is the dashboard's login entry point.
func (s *State) LoginPath() string {
	return s.loginPath
}

// Subscribe registers fn to be called after every change.
func (s *State) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *State) transition(apply func()) Snapshot {
	s.mu.Lock()
	apply()
	snap := s.snapshotLocked()
	observers := append(([]func(Snapshot))(nil), s.observers...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
	return snap
}

func (s *State) snapshotLocked() Snapshot {
	return Snapshot{
		User:            s.user,
		IsAuthenticated: s.user != nil,
		IsLoading:       s.loading,
		Phase:           s.phase,
	}
}
