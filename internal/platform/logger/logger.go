// Package logger owns the process zerolog logger and the request scoped children
// handlers log through
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"scanwedge/internal/platform/config/raw"
)

// Logger is the project logger type
type Logger = zerolog.Logger

// Options shape the root logger
type Options struct {
	Level       string // trace..panic, unknown levels log at debug
	Format      string // console or json
	Service     string
	Writer      io.Writer // stdout when nil
	Caller      bool
	SampleEvery int
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_CALLER and LOG_SAMPLE_EVERY
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       env.Get("LEVEL", "debug"),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Service:     env.Get("SERVICE", ""),
		Caller:      env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	root     atomic.Pointer[Logger]
	initMu   sync.Mutex
	setGlobs sync.Once
)

// Init replaces the root logger
func Init(opt Options) {
	setGlobs.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
	})

	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(w).Level(ParseLevel(opt.Level)).With().Timestamp().Logger()
	if opt.Service != "" {
		l = l.With().Str("service", opt.Service).Logger()
	}
	if opt.Caller {
		l = l.With().Caller().Logger()
	}
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	root.Store(&l)
}

// ParseLevel maps a level name, accepting "warning" for warn. Unknown names are debug.
func ParseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.DebugLevel
	}
	return lvl
}

// Get returns the root logger, built from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	initMu.Lock()
	defer initMu.Unlock()
	if root.Load() == nil {
		Init(FromEnv())
	}
	return root.Load()
}

// Named returns a child tagged with component
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}

type ctxKey struct{}

// WithRequest stores a child logger carrying the request and tenant ids on ctx.
// Calling it again replaces the ids rather than repeating them.
func WithRequest(ctx context.Context, reqID, tenantID string) context.Context {
	b := Get().With()
	if reqID != "" {
		b = b.Str("request_id", reqID)
	}
	if tenantID != "" {
		b = b.Str("tenant_id", tenantID)
	}
	l := b.Logger()
	return context.WithValue(ctx, ctxKey{}, &l)
}

// C returns the logger stored by WithRequest, or the root logger
func C(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return Get()
}
