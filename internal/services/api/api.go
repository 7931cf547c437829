// Package api provides the HTTP API for the application
package api

import (
	"scanwedge/internal/platform/config"
	"scanwedge/internal/platform/logger"
	phttp "scanwedge/internal/platform/net/http"
	ptime "scanwedge/internal/platform/time"

	"scanwedge/internal/modkit"
	"scanwedge/internal/modkit/httpkit"
	"scanwedge/internal/modkit/module"
	"scanwedge/internal/modkit/swaggerkit"

	metamod "scanwedge/internal/services/api/meta/module"
	scannermod "scanwedge/internal/services/api/scanner/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	Clock          ptime.Clock
	ServiceName    string
	EnableSwagger  bool
	EnableProfiler bool
	Stack          httpkit.StackOptions
}

// Mounted exposes what the caller has to run alongside the router
type Mounted struct {
	Scanner scannermod.Ports
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) Mounted {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:   opt.Config,
		Clock: opt.Clock,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// scanner first; meta reports on its ports
	scanner := scannermod.New(deps)
	sp := module.MustPortsOf[scannermod.Ports](scanner)

	meta := metamod.New(deps, modkit.WithPorts(metamod.Checks{
		ServiceName: opt.ServiceName,
		Catalog:     sp.Catalog,
		Scanner:     sp.Sessions,
	}))

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Stack), func(api httpkit.Router) {
		for _, m := range []modkit.Module{meta, scanner} {
			m.MountRoutes(api)
		}
	})
	return Mounted{Scanner: sp}
}
