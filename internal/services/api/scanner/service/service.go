// Package service runs scanner capture sessions
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"scanwedge/internal/core/capture"
	"scanwedge/internal/core/normalize"
	"scanwedge/internal/core/scanner"
	perr "scanwedge/internal/platform/errors"
	"scanwedge/internal/platform/logger"
	ptime "scanwedge/internal/platform/time"
	"scanwedge/internal/services/api/scanner/domain"
)

// Service defines the scanner service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the scanner service
type Svc struct {
	cfg    Config
	finder domain.ProductFinder
	norm   *normalize.Normalizer
	clock  ptime.Clock
	log    logger.Logger
	sem    chan struct{}
	newID  func() string

	mu       sync.RWMutex
	sessions map[string]*session
	gone     map[string]time.Time
}

// Opt customizes a Svc
type Opt func(*Svc)

// WithClock swaps the clock driving debounce timers and timestamps
func WithClock(c ptime.Clock) Opt {
	return func(s *Svc) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithIDs swaps the session and event id generator
func WithIDs(fn func() string) Opt {
	return func(s *Svc) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New constructs a scanner service. A nil finder turns every scan into an error outcome.
func New(cfg Config, finder domain.ProductFinder, opts ...Opt) (*Svc, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Defaults.Validate(); err != nil {
		return nil, perr.WithOp(err, "scanner.New")
	}
	s := &Svc{
		cfg:      cfg,
		finder:   finder,
		norm:     normalize.New(normalize.WithLayoutFold(cfg.FoldLayout)),
		clock:    ptime.System(),
		log:      *logger.Named("scanner"),
		sem:      make(chan struct{}, cfg.LookupConcurrency),
		newID:    uuid.NewString,
		sessions: make(map[string]*session),
		gone:     make(map[string]time.Time),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Defaults returns the thresholds new sessions start with
func (s *Svc) Defaults() domain.Thresholds { return domain.ThresholdsOf(s.cfg.Defaults) }

// Policy returns the default capture policy
func (s *Svc) Policy() capture.Policy { return *s.cfg.Policy }

// Count returns the number of live sessions
func (s *Svc) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Open starts a capture session with its own classifier
func (s *Svc) Open(ctx context.Context, c domain.Caller, in domain.OpenInput) (domain.SessionInfo, error) {
	opts := s.cfg.Defaults
	if in.DebounceMs > 0 {
		opts.DebounceWindow = time.Duration(in.DebounceMs) * time.Millisecond
	}
	if in.IntervalThresholdMs > 0 {
		opts.IntervalThreshold = time.Duration(in.IntervalThresholdMs) * time.Millisecond
	}
	if in.MinLength > 0 {
		opts.MinLength = in.MinLength
	}
	if len(in.Terminators) > 0 {
		opts.Terminators = append([]string(nil), in.Terminators...)
	}
	if err := opts.Validate(); err != nil {
		return domain.SessionInfo{}, err
	}

	pol := *s.cfg.Policy
	if in.AllowDocument != nil {
		pol.AllowDocument = *in.AllowDocument
	}
	if len(in.CaptureIDs) > 0 {
		pol.CaptureIDs = append([]string(nil), in.CaptureIDs...)
	}

	now := s.clock.Now()
	sctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	sess := &session{
		id:       s.newID(),
		created:  now,
		policy:   pol,
		ctx:      sctx,
		cancel:   cancel,
		caller:   c,
		lastSeen: now,
		limit:    s.cfg.QueueSize,
		subs:     make(map[int]chan domain.ScanEvent),
	}

	copts := []scanner.Opt{
		scanner.WithClock(s.clock),
		scanner.OnResult(func(res scanner.Result) { s.onResult(sess, res) }),
	}
	if in.Disabled {
		copts = append(copts, scanner.Disabled())
	}
	cls, err := scanner.New(opts, copts...)
	if err != nil {
		cancel()
		return domain.SessionInfo{}, err
	}
	sess.cls = cls

	s.mu.Lock()
	if len(s.sessions) >= s.cfg.MaxSessions {
		s.mu.Unlock()
		sess.close()
		return domain.SessionInfo{}, perr.Newf(perr.ErrorCodeTooManyRequests, "session limit %d reached", s.cfg.MaxSessions)
	}
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	logger.C(ctx).Info().
		Str("session_id", sess.id).
		Str("company_id", c.CompanyID).
		Dur("debounce", opts.DebounceWindow).
		Int("min_length", opts.MinLength).
		Msg("scanner session opened")
	return sess.info(), nil
}

// Get describes a live session
func (s *Svc) Get(ctx context.Context, id string) (domain.SessionInfo, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return domain.SessionInfo{}, err
	}
	return sess.info(), nil
}

// Close releases a session. Closing twice reports the session as gone.
func (s *Svc) Close(ctx context.Context, id string) error {
	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	s.release(sess, "closed")
	logger.C(ctx).Info().Str("session_id", id).Msg("scanner session closed")
	return nil
}

// Feed applies a batch of client key presses in order
func (s *Svc) Feed(ctx context.Context, id string, c domain.Caller, keys []domain.KeyInput) (domain.FeedResult, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return domain.FeedResult{}, err
	}
	sess.touch(s.clock.Now(), c)

	sess.feedMu.Lock()
	defer sess.feedMu.Unlock()

	window := sess.cls.Options().DebounceWindow
	out := domain.FeedResult{}
	sess.beginBatch()
	for _, k := range keys {
		t := capture.Target{Kind: capture.ParseKind(k.Target), ID: k.TargetID}
		if !sess.policy.Allows(t) {
			out.Ignored++
			continue
		}
		at := sess.stamp(k.AtMs, s.clock.Now())
		printable := scanner.Printable(k.Key)
		// a gap in client time longer than the window ends the burst even if
		// the whole batch arrived at once
		if printable && !sess.lastKey.IsZero() && sess.cls.Pending() > 0 && at.Sub(sess.lastKey) >= window {
			sess.cls.OnIdleTimeout()
		}
		sess.cls.OnKeyEvent(scanner.KeyEvent{Key: k.Key, At: at})
		if printable {
			sess.lastKey = at
		}
		out.Accepted++
	}
	out.Results = sess.endBatch()
	out.Pending = sess.cls.Pending()
	return out, nil
}

// Reset drops any partial burst
func (s *Svc) Reset(ctx context.Context, id string) (domain.SessionInfo, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return domain.SessionInfo{}, err
	}
	sess.feedMu.Lock()
	sess.cls.Reset()
	sess.lastKey = time.Time{}
	sess.feedMu.Unlock()
	sess.touch(s.clock.Now(), domain.Caller{})
	return sess.info(), nil
}

// SetEnabled turns keystroke classification on or off
func (s *Svc) SetEnabled(ctx context.Context, id string, on bool) (domain.SessionInfo, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return domain.SessionInfo{}, err
	}
	sess.feedMu.Lock()
	sess.cls.SetEnabled(on)
	if !on {
		sess.lastKey = time.Time{}
	}
	sess.feedMu.Unlock()
	sess.touch(s.clock.Now(), domain.Caller{})
	return sess.info(), nil
}

// Submit resolves a manually entered code through the same path as a scan
func (s *Svc) Submit(ctx context.Context, id string, c domain.Caller, code string) (domain.ScanEvent, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return domain.ScanEvent{}, err
	}
	sess.touch(s.clock.Now(), c)

	barcode := s.norm.Normalize(code)
	if barcode == "" {
		return domain.ScanEvent{}, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "code is empty after normalization"), "code")
	}
	out := s.resolve(ctx, sess.currentCaller(), barcode)
	ev, ok := sess.publish(s.event(domain.SourceManual, nil, out))
	if !ok {
		return domain.ScanEvent{}, perr.Gonef("session %s closed", id)
	}
	return ev, nil
}

// Events returns queued events with a sequence number above after
func (s *Svc) Events(ctx context.Context, id string, after uint64) (domain.EventsResult, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return domain.EventsResult{}, err
	}
	sess.touch(s.clock.Now(), domain.Caller{})
	return sess.since(after), nil
}

// Subscribe streams events published after the call. The channel closes with the session.
func (s *Svc) Subscribe(ctx context.Context, id string) (<-chan domain.ScanEvent, func(), error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, func() {}, err
	}
	ch, cancel, ok := sess.subscribe(s.cfg.QueueSize)
	if !ok {
		return nil, func() {}, perr.Gonef("session %s closed", id)
	}
	return ch, cancel, nil
}

// Touch marks a session as active, used by long lived streams
func (s *Svc) Touch(id string) {
	if sess, err := s.lookup(id); err == nil {
		sess.touch(s.clock.Now(), domain.Caller{})
	}
}

// CloseAll releases every session, used at shutdown
func (s *Svc) CloseAll() {
	s.mu.RLock()
	all := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		all = append(all, sess)
	}
	s.mu.RUnlock()
	for _, sess := range all {
		s.release(sess, "shutdown")
	}
}

func (s *Svc) lookup(id string) (*session, error) {
	id = strings.TrimSpace(id)
	s.mu.RLock()
	sess, ok := s.sessions[id]
	_, gone := s.gone[id]
	s.mu.RUnlock()
	switch {
	case ok:
		return sess, nil
	case gone:
		return nil, perr.Gonef("session %s closed", id)
	default:
		return nil, perr.WithField(perr.NotFoundf("session %s not found", id), "id")
	}
}

// release unregisters a session, leaves a tombstone and waits for in flight lookups
func (s *Svc) release(sess *session, reason string) {
	s.mu.Lock()
	if _, ok := s.sessions[sess.id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.sessions, sess.id)
	s.gone[sess.id] = s.clock.Now()
	s.mu.Unlock()

	sess.close()
	sess.inflight.Wait()
	s.log.Debug().Str("session_id", sess.id).Str("reason", reason).Msg("scanner session released")
}

func (s *Svc) event(src domain.Source, res *scanner.Result, out domain.Outcome) domain.ScanEvent {
	return domain.ScanEvent{
		ID:      s.newID(),
		Source:  src,
		Result:  res,
		Outcome: out,
		At:      s.clock.Now(),
	}
}
