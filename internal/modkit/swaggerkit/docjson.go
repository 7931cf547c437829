package swaggerkit

import (
	"encoding/json"
	"net/http"
	"sync"

	"scanwedge/internal/platform/logger"

	docs "scanwedge/internal/services/api/docs"
)

// readDoc is swapped in tests
var readDoc = func() string { return docs.SwaggerInfo.ReadDoc() }

var errorSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "string"},
		"error":       map[string]any{"type": "string"},
		"field":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
	"required": []any{"status_code", "status", "code", "error"},
}

// defaults are added to every operation that does not document the status itself
var defaults = map[string]string{
	"400": "Invalid request body or parameters",
	"500": "Internal error",
	"503": "Catalog unavailable",
}

// docJSON renders the OpenAPI document once, with the shared error envelope
// and default error responses filled in
func docJSON() http.HandlerFunc {
	var (
		once sync.Once
		body []byte
		err  error
	)
	return func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { body, err = decorate(readDoc()) })
		if err != nil {
			logger.Named("swagger").Error().Err(err).Msg("openapi document is not valid json")
			http.Error(w, "openapi document unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(body)
	}
}

func decorate(raw string) ([]byte, error) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return nil, err
	}
	comps := child(spec, "components")
	schemas := child(comps, "schemas")
	if _, ok := schemas["ErrorEnvelope"]; !ok {
		schemas["ErrorEnvelope"] = errorSchema
	}

	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for _, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			for code, desc := range defaults {
				if _, ok := resps[code]; ok {
					continue
				}
				resps[code] = map[string]any{
					"description": desc,
					"content": map[string]any{
						"application/json": map[string]any{
							"schema": map[string]any{"$ref": "#/components/schemas/ErrorEnvelope"},
						},
					},
				}
			}
		}
	}
	return json.Marshal(spec)
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}
