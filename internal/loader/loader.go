// Package loader drives the data shown on a page: one state machine per
// backend resource, loaded explicitly whenever its input changes.
package loader

import (
	"context"
	"sync"

	"github.com/mamadbah2/epd-dashboard/internal/notify"
	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
)

// State is the phase a loader is in.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// None is the parameter of loaders that take no input.
type None struct{}

// Fetcher fetches the resource for one parameter value.
type Fetcher[P comparable, T any] func(ctx context.Context, param P) (T, error)

// Snapshot is a consistent view of a loader.
type Snapshot[T any] struct {
	State   State
	Data    T
	Loading bool
	Err     error
}

// Option configures a Loader.
type Option[P comparable, T any] func(*Loader[P, T])

// WithGuard decides whether a parameter is present. Absent parameters never
// reach the backend.
func WithGuard[P comparable, T any](present func(P) bool) Option[P, T] {
	return func(l *Loader[P, T]) { l.present = present }
}

// WithTransform post-processes fetched data before it is stored.
func WithTransform[P comparable, T any](transform func(P, T) T) Option[P, T] {
	return func(l *Loader[P, T]) { l.transform = transform }
}

// WithResetOnError drops the previous data when a load fails.
func WithResetOnError[P comparable, T any]() Option[P, T] {
	return func(l *Loader[P, T]) { l.resetOnError = true }
}

// WithTitle sets the title of the error notice raised on failure.
func WithTitle[P comparable, T any](title string) Option[P, T] {
	return func(l *Loader[P, T]) { l.title = title }
}

// Loader is an idle/loading/ready/failed state machine around a Fetcher.
// Only the latest Load may settle the state; earlier responses are dropped.
type Loader[P comparable, T any] struct {
	mu           sync.Mutex
	fetch        Fetcher[P, T]
	notifier     notify.Notifier
	present      func(P) bool
	transform    func(P, T) T
	resetOnError bool
	title        string

	seq       uint64
	param     P
	state     State
	data      T
	loading   bool
	err       error
	observers []func(Snapshot[T])
}

// New builds an idle loader. A nil notifier discards notices.
func New[P comparable, T any](fetch Fetcher[P, T], notifier notify.Notifier, opts ...Option[P, T]) *Loader[P, T] {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	l := &Loader[P, T]{
		fetch:    fetch,
		notifier: notifier,
		present:  nonZero[P],
		title:    "Error loading data",
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the resource for param. Failures are reported through the
// notifier and kept in the snapshot; they are not returned.
func (l *Loader[P, T]) Load(ctx context.Context, param P) Snapshot[T] {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	l.param = param

	if !l.present(param) {
		var zero T
		l.data = zero
		l.err = nil
		l.loading = false
		l.state = StateReady
		snap, observers := l.snapshotLocked(), l.observersLocked()
		l.mu.Unlock()
		publish(observers, snap)
		return snap
	}

	l.loading = true
	l.state = StateLoading
	snap, observers := l.snapshotLocked(), l.observersLocked()
	l.mu.Unlock()
	publish(observers, snap)

	data, err := l.fetch(ctx, param)

	l.mu.Lock()
	if seq != l.seq {
		// a newer load owns the state
		snap = l.snapshotLocked()
		l.mu.Unlock()
		return snap
	}
	l.loading = false
	if err != nil {
		if l.resetOnError {
			var zero T
			l.data = zero
		}
		l.err = err
		l.state = StateFailed
	} else {
		if l.transform != nil {
			data = l.transform(param, data)
		}
		l.data = data
		l.err = nil
		l.state = StateReady
	}
	snap, observers = l.snapshotLocked(), l.observersLocked()
	l.mu.Unlock()

	if err != nil {
		l.notifier.Error(l.title, epdapi.Message(err))
	}
	publish(observers, snap)
	return snap
}

// Refetch repeats the last Load. Before any Load it loads the zero parameter.
func (l *Loader[P, T]) Refetch(ctx context.Context) Snapshot[T] {
	l.mu.Lock()
	param := l.param
	l.mu.Unlock()
	return l.Load(ctx, param)
}

// Snapshot returns the current state.
func (l *Loader[P, T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Subscribe registers fn to be called after every transition.
func (l *Loader[P, T]) Subscribe(fn func(Snapshot[T])) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, fn)
}

// mutate applies fn to the stored data and publishes the result.
func (l *Loader[P, T]) mutate(fn func(T) T) {
	l.mu.Lock()
	l.data = fn(l.data)
	snap, observers := l.snapshotLocked(), l.observersLocked()
	l.mu.Unlock()
	publish(observers, snap)
}

func (l *Loader[P, T]) snapshotLocked() Snapshot[T] {
	return Snapshot[T]{State: l.state, Data: l.data, Loading: l.loading, Err: l.err}
}

func (l *Loader[P, T]) observersLocked() []func(Snapshot[T]) {
	return append(([]func(Snapshot[T]))(nil), l.observers...)
}

func publish[T any](observers []func(Snapshot[T]), snap Snapshot[T]) {
	for _, fn := range observers {
		fn(snap)
	}
}

func nonZero[P comparable](param P) bool {
	if _, ok := any(param).(None); ok {
		return true
	}
	var zero P
	return param != zero
}
