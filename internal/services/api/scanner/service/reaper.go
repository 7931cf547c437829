package service

import (
	"context"
	"time"

	"scanwedge/internal/platform/logger"
)

// Run closes idle sessions until ctx is done
func (s *Svc) Run(ctx context.Context) error {
	log := logger.Named("scanner-reaper")
	ticker := time.NewTicker(s.cfg.ReapEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.CloseAll()
			return ctx.Err()
		case <-ticker.C:
			if n := s.Reap(s.clock.Now()); n > 0 {
				log.Info().Int("reaped", n).Int("live", s.Count()).Msg("idle scanner sessions closed")
			}
		}
	}
}

// Reap closes sessions idle for longer than the TTL and forgets old tombstones
func (s *Svc) Reap(now time.Time) int {
	ttl := s.cfg.SessionTTL

	s.mu.Lock()
	var stale []*session
	for _, sess := range s.sessions {
		if now.Sub(sess.idleSince()) > ttl {
			stale = append(stale, sess)
		}
	}
	for id, at := range s.gone {
		if now.Sub(at) > ttl {
			delete(s.gone, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range stale {
		s.release(sess, "idle")
	}
	return len(stale)
}
