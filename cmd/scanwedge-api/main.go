// @title         scanwedge API
// @version       1.0
// @description   Barcode scanner keystroke capture and catalog lookup

package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"scanwedge/internal/core/version"
	"scanwedge/internal/modkit/httpkit"
	"scanwedge/internal/platform/config"
	"scanwedge/internal/platform/logger"
	phttp "scanwedge/internal/platform/net/http"

	"scanwedge/internal/services/api"
)

const serviceName = "scanwedge-api"

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()
	l.Info().Str("build", version.Info(serviceName).String()).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API; scanner settings come from CORE_SCANNER_* and SERVICE_CATALOG_*
	mounted := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Logger:         l,
			ServiceName:    serviceName,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			Stack: httpkit.StackOptions{
				CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
				Timeout:     apiCfg.MayDuration("TIMEOUT", 30*time.Second),
			},
		},
	)

	// idle session reaper; closes every session on shutdown
	reaped := make(chan struct{})
	go func() {
		defer close(reaped)
		if err := mounted.Scanner.Runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			l.Error().Err(err).Msg("scanner reaper stopped")
		}
	}()

	// serves until ctx is cancelled, then drains (CORE_API_DRAIN_TIMEOUT)
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	stop()
	<-reaped
	l.Info().Msg("stopped")
}
