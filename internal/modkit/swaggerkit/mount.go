// Package swaggerkit serves the OpenAPI document and Swagger UI under /api/docs
package swaggerkit

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	phttp "scanwedge/internal/platform/net/http"
)

// Mount registers the docs routes when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", http.RedirectHandler("/api/docs/", http.StatusPermanentRedirect).ServeHTTP)
	r.Get("/api/docs/doc.json", docJSON())
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName(docsInstance),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}

const docsInstance = "api"
