// Package service drives recorded keystrokes through a classifier on a manual clock
package service

import (
	"context"
	"errors"
	"io"
	"time"

	"scanwedge/internal/core/capture"
	"scanwedge/internal/core/normalize"
	"scanwedge/internal/core/scanner"
	"scanwedge/internal/modkit"
	perr "scanwedge/internal/platform/errors"
	"scanwedge/internal/platform/logger"
	ptime "scanwedge/internal/platform/time"
	"scanwedge/internal/services/replay/domain"
)

// Config tunes a replay
type Config struct {
	Scanner    scanner.Options
	Policy     capture.Policy
	FoldLayout bool
}

// Service replays keylogs
type Service struct {
	cfg  Config
	norm *normalize.Normalizer
	log  logger.Logger
}

// New validates cfg and builds the service
func New(deps modkit.Deps, cfg Config) (*Service, error) {
	cfg.Scanner = cfg.Scanner.WithDefaults()
	if err := cfg.Scanner.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		cfg:  cfg,
		norm: normalize.New(normalize.WithLayoutFold(cfg.FoldLayout)),
		log:  deps.Log.With().Str("component", "replay").Logger(),
	}, nil
}

// Replay feeds src through a fresh classifier. The clock is moved to each press
// before it is applied, so idle timeouts fire where they would have live. A
// burst still open at the end of the log is closed by its idle timeout.
func (s *Service) Replay(ctx context.Context, src domain.Source) (domain.Report, error) {
	rep := domain.Report{Thresholds: s.thresholds(), Bursts: []domain.Burst{}}

	clock := ptime.NewManual(time.Time{})
	cls, err := scanner.New(s.cfg.Scanner,
		scanner.WithClock(clock),
		scanner.OnResult(func(r scanner.Result) {
			b := domain.Burst{Result: r}
			if r.IsScanner {
				b.Barcode = s.norm.Normalize(r.Text)
			}
			rep.Bursts = append(rep.Bursts, b)
		}),
	)
	if err != nil {
		return rep, err
	}
	defer cls.Close()

	sum := &rep.Summary
	for {
		if err := ctx.Err(); err != nil {
			return rep, perr.Wrapf(err, perr.ErrorCodeUnavailable, "replay stopped after %d keys", sum.Keys)
		}
		e, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rep, err
		}
		sum.Keys++

		ev := e.Event()
		clock.Set(ev.At)
		if !s.cfg.Policy.Allows(e.Where()) {
			sum.Denied++
			continue
		}
		sum.Accepted++
		cls.OnKeyEvent(ev)
	}
	clock.Advance(s.cfg.Scanner.DebounceWindow)

	summarize(&rep)
	s.log.Debug().
		Int("keys", sum.Keys).
		Int("bursts", sum.Bursts).
		Int("scans", sum.Scans).
		Msg("replay finished")
	return rep, nil
}

func (s *Service) thresholds() domain.Thresholds {
	o := s.cfg.Scanner
	return domain.Thresholds{
		DebounceMs:          o.DebounceWindow.Milliseconds(),
		IntervalThresholdMs: o.IntervalThreshold.Milliseconds(),
		MinLength:           o.MinLength,
		Terminators:         o.Terminators,
		AllowDocument:       s.cfg.Policy.AllowDocument,
		CaptureIDs:          s.cfg.Policy.CaptureIDs,
	}
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v float64) { m.sum += v; m.n++ }

func (m mean) value() float64 {
	if m.n == 0 {
		return 0
	}
	return m.sum / float64(m.n)
}

func summarize(rep *domain.Report) {
	var all, scans, typed mean
	for _, b := range rep.Bursts {
		rep.Summary.Bursts++
		if b.IsScanner {
			rep.Summary.Scans++
		} else {
			rep.Summary.Typed++
		}
		if b.Length < 2 {
			continue
		}
		all.add(b.AverageIntervalMs)
		if b.IsScanner {
			scans.add(b.AverageIntervalMs)
		} else {
			typed.add(b.AverageIntervalMs)
		}
	}
	rep.Summary.MeanIntervalMs = all.value()
	rep.Summary.ScanMeanIntervalMs = scans.value()
	rep.Summary.TypedMeanIntervalMs = typed.value()
}
