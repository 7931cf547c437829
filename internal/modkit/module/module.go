// Package module holds the module contract and port lookups
package module

import phttp "scanwedge/internal/platform/net/http"

// Module mounts routes and exposes a ports value for composition in main
type Module interface {
	Name() string
	Ports() any
	MountRoutes(r phttp.Router)
}
