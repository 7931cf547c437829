package service

import (
	"context"
	"sync"
	"time"

	"scanwedge/internal/core/capture"
	"scanwedge/internal/core/scanner"
	ptime "scanwedge/internal/platform/time"
	"scanwedge/internal/services/api/scanner/domain"
)

// session owns one classifier and the scan events it produced
type session struct {
	id      string
	created time.Time
	policy  capture.Policy
	cls     *scanner.Classifier

	ctx      context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup

	// feedMu serializes key batches so client-time gaps are judged in order
	feedMu  sync.Mutex
	lastKey time.Time
	// clientTime is set once a key carried at_ms; later keys without one
	// inherit the previous stamp instead of server time
	clientTime bool
	lastStamp  time.Time

	mu       sync.Mutex
	caller   domain.Caller
	lastSeen time.Time
	seq      uint64
	events   []domain.ScanEvent
	limit    int
	subs     map[int]chan domain.ScanEvent
	nextSub  int
	batch    *[]scanner.Result
	closed   bool
}

func (s *session) touch(now time.Time, c domain.Caller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
	if c.Token != "" {
		s.caller.Token = c.Token
	}
	if c.CompanyID != "" {
		s.caller.CompanyID = c.CompanyID
	}
	if c.UserID != "" {
		s.caller.UserID = c.UserID
	}
}

// stamp picks the press time for a key. Callers hold feedMu.
func (s *session) stamp(atMs int64, now time.Time) time.Time {
	at := now
	switch {
	case atMs > 0:
		at = ptime.FromMillis(atMs)
		s.clientTime = true
	case s.clientTime && !s.lastStamp.IsZero():
		at = s.lastStamp
	}
	s.lastStamp = at
	return at
}

func (s *session) currentCaller() domain.Caller {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caller
}

func (s *session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// collect records results emitted while a batch is being applied
func (s *session) collect(res scanner.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.batch != nil {
		*s.batch = append(*s.batch, res)
	}
}

func (s *session) beginBatch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]scanner.Result, 0)
	s.batch = &out
}

func (s *session) endBatch() []scanner.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.batch == nil {
		return []scanner.Result{}
	}
	out := *s.batch
	s.batch = nil
	return out
}

// publish assigns the next sequence number, queues the event and fans it out.
// Events published after close are dropped.
func (s *session) publish(ev domain.ScanEvent) (domain.ScanEvent, bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ev, false
	}
	s.seq++
	ev.Seq = s.seq
	ev.SessionID = s.id
	s.events = append(s.events, ev)
	if over := len(s.events) - s.limit; over > 0 {
		s.events = append(s.events[:0:0], s.events[over:]...)
	}
	// sends stay under the lock so unsubscribe cannot close a channel mid-send
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
	return ev, true
}

func (s *session) since(after uint64) domain.EventsResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := domain.EventsResult{Events: []domain.ScanEvent{}, LastSeq: s.seq}
	for _, ev := range s.events {
		if ev.Seq > after {
			out.Events = append(out.Events, ev)
		}
	}
	return out
}

func (s *session) subscribe(buf int) (<-chan domain.ScanEvent, func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, func() {}, false
	}
	id := s.nextSub
	s.nextSub++
	ch := make(chan domain.ScanEvent, buf)
	s.subs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}, true
}

func (s *session) info() domain.SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.SessionInfo{
		ID:         s.id,
		CompanyID:  s.caller.CompanyID,
		UserID:     s.caller.UserID,
		Enabled:    s.cls.Enabled(),
		State:      s.cls.State().String(),
		Pending:    s.cls.Pending(),
		LastSeq:    s.seq,
		Thresholds: domain.ThresholdsOf(s.cls.Options()),
		Policy:     s.policy,
		CreatedAt:  s.created,
		LastSeenAt: s.lastSeen,
	}
}

// close releases the classifier, cancels lookups and ends all subscriptions
func (s *session) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	s.mu.Unlock()

	s.cancel()
	_ = s.cls.Close()
}
