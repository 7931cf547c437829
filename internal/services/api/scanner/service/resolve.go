package service

import (
	"context"
	"errors"

	"scanwedge/internal/core/scanner"
	perr "scanwedge/internal/platform/errors"
	"scanwedge/internal/services/api/scanner/domain"
)

// onResult handles every burst a session classifier emits
func (s *Svc) onResult(sess *session, res scanner.Result) {
	sess.collect(res)
	r := res

	if !res.IsScanner {
		sess.publish(s.event(domain.SourceKeys, &r, domain.Outcome{Action: domain.ActionIgnored}))
		return
	}
	barcode := s.norm.Normalize(res.Text)
	if barcode == "" {
		sess.publish(s.event(domain.SourceKeys, &r, domain.Outcome{
			Action:  domain.ActionIgnored,
			Message: "barcode empty after normalization",
		}))
		return
	}

	sess.mu.Lock()
	if sess.closed {
		sess.mu.Unlock()
		return
	}
	sess.inflight.Add(1)
	sess.mu.Unlock()

	go func() {
		defer sess.inflight.Done()
		select {
		case s.sem <- struct{}{}:
		case <-sess.ctx.Done():
			return
		}
		defer func() { <-s.sem }()

		out := s.resolve(sess.ctx, sess.currentCaller(), barcode)
		if sess.ctx.Err() != nil {
			return
		}
		sess.publish(s.event(domain.SourceKeys, &r, out))
	}()
}

// resolve maps a catalog lookup onto a client action. Lookups are not retried.
func (s *Svc) resolve(ctx context.Context, c domain.Caller, barcode string) domain.Outcome {
	if s.finder == nil {
		return domain.Outcome{Action: domain.ActionError, Barcode: barcode, Message: "catalog not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.LookupTimeout)
	defer cancel()

	p, err := s.finder.FindProduct(ctx, domain.Lookup{Barcode: barcode, CompanyID: c.CompanyID, Token: c.Token})
	switch {
	case err == nil && p != nil:
		return domain.Outcome{Action: domain.ActionOpenProduct, Barcode: barcode, Product: p}
	case err == nil, perr.IsCode(err, perr.ErrorCodeNotFound):
		return domain.Outcome{Action: domain.ActionCreateProduct, Barcode: barcode}
	}

	msg := err.Error()
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		msg = perr.Timeoutf("catalog lookup timed out after %s", s.cfg.LookupTimeout).Error()
	}
	s.log.Warn().Err(err).Str("barcode", barcode).Str("company_id", c.CompanyID).Msg("catalog lookup failed")
	return domain.Outcome{Action: domain.ActionError, Barcode: barcode, Message: msg}
}
