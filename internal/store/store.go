// Package store owns the shared profile state and the operations that keep
// it in step with the remote profile service and the local cache.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	applog "github.com/janisto/profile-console/internal/platform/logging"
	"github.com/janisto/profile-console/internal/profile"
	"github.com/janisto/profile-console/internal/service/remote"
)

// errCache marks a local cache failure. It is reported with the operation's
// fallback message.
var errCache = errors.New("profile cache failure")

// Cache persists the last known-good profile between runs.
type Cache interface {
	Save(ctx context.Context, p *profile.Profile) error
	Load(ctx context.Context) *profile.Profile
	Clear(ctx context.Context) error
}

// Recorder observes completed operations.
type Recorder interface {
	RecordOperation(op, result string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordOperation(string, string, time.Duration) {}

// Option configures a Store.
type Option func(*Store)

// WithRecorder reports each completed operation to r.
func WithRecorder(r Recorder) Option {
	return func(s *Store) {
		if r != nil {
			s.recorder = r
		}
	}
}

// Store holds the profile state. Coordinating operations run one at a time in
// arrival order; Snapshot never waits for them.
type Store struct {
	remote   remote.Service
	cache    Cache
	recorder Recorder

	opMu sync.Mutex

	mu    sync.RWMutex
	state State

	subMu     sync.Mutex
	subs      map[int]func(State)
	nextSubID int
}

// New creates an empty store. Call Init to seed it from the cache.
func New(svc remote.Service, cache Cache, opts ...Option) *Store {
	s := &Store{
		remote:   svc,
		cache:    cache,
		recorder: nopRecorder{},
		subs:     make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init seeds the state from the cache. A cache miss leaves the state empty.
func (s *Store) Init(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if p := s.cache.Load(ctx); p != nil {
		s.dispatch(SetProfile{Profile: p})
		applog.LogInfo(ctx, "profile restored from cache", zap.String("profile_id", p.ID))
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Subscribe registers fn to receive the state after every transition, in
// order. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	snap := s.state.Clone()
	s.mu.Unlock()

	s.subMu.Lock()
	subs := make([]func(State), 0, len(s.subs))
	for id := 0; id < s.nextSubID; id++ {
		if fn, ok := s.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(snap.Clone())
	}
}

// begin marks an operation as in flight and clears the shared error.
func (s *Store) begin() {
	s.dispatch(SetLoading{Loading: true})
	s.dispatch(SetError{})
}

func (s *Store) finish() {
	s.dispatch(SetLoading{Loading: false})
}

// Save sends draft to the remote service under name. On success the returned
// profile becomes the current one and is written to the cache.
func (s *Store) Save(ctx context.Context, name string, draft *profile.Profile) Result {
	ctx = context.WithoutCancel(ctx)
	s.opMu.Lock()
	defer s.opMu.Unlock()

	start := time.Now()
	s.begin()
	defer s.finish()

	saved, err := s.remote.CreateOrUpdate(ctx, name, draft)
	if err == nil && saved == nil {
		err = errors.New("remote returned no profile")
	}
	if err != nil {
		return s.fail(ctx, OpSave, draftID(draft), err, start)
	}

	s.dispatch(SetProfile{Profile: saved})
	if err := s.mirror(ctx, saved); err != nil {
		return s.fail(ctx, OpSave, saved.ID, err, start)
	}
	return s.succeed(ctx, OpSave, saved, start)
}

// Load makes sure a profile is present, fetching it from the remote service
// only when the state holds none.
func (s *Store) Load(ctx context.Context) Result {
	ctx = context.WithoutCancel(ctx)
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if current := s.Snapshot().Data; current != nil {
		return succeeded(current)
	}

	start := time.Now()
	s.begin()
	defer s.finish()

	fetched, err := s.remote.FetchCurrent(ctx)
	if err != nil {
		return s.fail(ctx, OpLoad, "", err, start)
	}
	if fetched == nil {
		s.recorder.RecordOperation(string(OpLoad), string(KindNotFound), time.Since(start))
		applog.LogInfo(ctx, "no remote profile")
		return failed(KindNotFound, MsgNoProfile)
	}

	s.dispatch(SetProfile{Profile: fetched})
	if err := s.mirror(ctx, fetched); err != nil {
		return s.fail(ctx, OpLoad, fetched.ID, err, start)
	}
	return s.succeed(ctx, OpLoad, fetched, start)
}

// Delete removes the profile with the given id remotely, then locally.
func (s *Store) Delete(ctx context.Context, id string) Result {
	ctx = context.WithoutCancel(ctx)
	s.opMu.Lock()
	defer s.opMu.Unlock()

	start := time.Now()
	s.begin()
	defer s.finish()

	if err := s.remote.Delete(ctx, id); err != nil {
		return s.fail(ctx, OpDelete, id, err, start)
	}

	s.dispatch(ClearProfile{})
	if err := s.cache.Clear(ctx); err != nil {
		return s.fail(ctx, OpDelete, id, fmt.Errorf("%w: clear: %w", errCache, err), start)
	}
	s.recorder.RecordOperation(string(OpDelete), applog.AuditSuccess, time.Since(start))
	applog.LogAuditEvent(ctx, "delete", "profile", id, applog.AuditSuccess, nil)
	return Result{Success: true}
}

// mirror writes p to the cache. The state keeps p when the write fails.
func (s *Store) mirror(ctx context.Context, p *profile.Profile) error {
	if err := s.cache.Save(ctx, p); err != nil {
		return fmt.Errorf("%w: save: %w", errCache, err)
	}
	return nil
}

func (s *Store) succeed(ctx context.Context, op Operation, p *profile.Profile, start time.Time) Result {
	s.recorder.RecordOperation(string(op), applog.AuditSuccess, time.Since(start))
	applog.LogAuditEvent(ctx, string(op), "profile", p.ID, applog.AuditSuccess, nil)
	return succeeded(p)
}

func (s *Store) fail(ctx context.Context, op Operation, id string, err error, start time.Time) Result {
	msg := failureMessage(op, err)
	kind := classify(err)
	s.dispatch(errorMessage(msg))

	s.recorder.RecordOperation(string(op), string(kind), time.Since(start))
	applog.LogWarn(ctx, "profile operation failed",
		zap.String("operation", string(op)),
		zap.String("kind", string(kind)),
		zap.Error(err),
	)
	applog.LogAuditEvent(ctx, string(op), "profile", id, applog.AuditFailure, map[string]any{
		"kind":    string(kind),
		"message": msg,
	})
	return failed(kind, msg)
}

// failureMessage prefers the remote's own message. Cache failures get the
// fallback; other errors raised outside the remote protocol carry theirs as is.
func failureMessage(op Operation, err error) string {
	if errors.Is(err, errCache) {
		return op.Fallback()
	}
	var upstream *remote.UpstreamError
	if errors.As(err, &upstream) {
		if upstream.Message != "" {
			return upstream.Message
		}
		return op.Fallback()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return op.Fallback()
}

func classify(err error) ErrorKind {
	switch {
	case errors.Is(err, remote.ErrNotFound):
		return KindNotFound
	case errors.Is(err, remote.ErrRejected):
		return KindValidation
	default:
		return KindTransport
	}
}

func draftID(p *profile.Profile) string {
	if p == nil {
		return ""
	}
	return p.ID
}
