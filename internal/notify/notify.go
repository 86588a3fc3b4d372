// Package notify carries the transient, non-blocking notices shown to a user
// after an action or a failed load.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Level is the severity of a notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is one user-visible notification.
type Notice struct {
	Level       Level  `json:"level"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Notifier surfaces notices to the user.
type Notifier interface {
	Success(title, description string)
	Error(title, description string)
}

// Flash collects the notices raised while serving one page.
type Flash struct {
	mu      sync.Mutex
	notices []Notice
}

// NewFlash returns an empty collector, optionally seeded with notices carried
// over from a redirect.
func NewFlash(carried ...Notice) *Flash {
	return &Flash{notices: append([]Notice(nil), carried...)}
}

func (f *Flash) Success(title, description string) {
	f.add(Notice{Level: LevelSuccess, Title: title, Description: description})
}

func (f *Flash) Error(title, description string) {
	f.add(Notice{Level: LevelError, Title: title, Description: description})
}

// Notices returns a copy of everything collected so far.
func (f *Flash) Notices() []Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Notice(nil), f.notices...)
}

// HasErrors reports whether any error notice was raised.
func (f *Flash) HasErrors() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notices {
		if n.Level == LevelError {
			return true
		}
	}
	return false
}

func (f *Flash) add(n Notice) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, n)
}

// Logged decorates a Notifier so every notice is also written to the log.
type Logged struct {
	next   Notifier
	logger *zap.Logger
}

// NewLogged wraps next. A nil next only logs.
func NewLogged(next Notifier, logger *zap.Logger) *Logged {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logged{next: next, logger: logger}
}

func (l *Logged) Success(title, description string) {
	l.logger.Debug("notice", zap.String("level", string(LevelSuccess)), zap.String("title", title), zap.String("description", description))
	if l.next != nil {
		l.next.Success(title, description)
	}
}

func (l *Logged) Error(title, description string) {
	l.logger.Warn("notice", zap.String("level", string(LevelError)), zap.String("title", title), zap.String("description", description))
	if l.next != nil {
		l.next.Error(title, description)
	}
}

// Discard drops every notice.
type Discard struct{}

func (Discard) Success(string, string) {}
func (Discard) Error(string, string)   {}
