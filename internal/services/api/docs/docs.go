// Package docs holds the OpenAPI document served by swaggerkit
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
  "openapi": "3.0.3",
  "info": {
    "title": "{{.Title}}",
    "description": "{{.Description}}",
    "version": "{{.Version}}"
  },
  "servers": [{"url": "{{.BasePath}}"}],
  "tags": [
    {"name": "Scanner", "description": "Keystroke capture sessions"},
    {"name": "Meta", "description": "Health and build info"}
  ],
  "paths": {
    "/scanner/defaults": {
      "get": {
        "tags": ["Scanner"], "summary": "Default classifier thresholds", "operationId": "scannerDefaults",
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Thresholds"}}}}}
      }
    },
    "/scanner/sessions": {
      "post": {
        "tags": ["Scanner"], "summary": "Open a capture session", "operationId": "scannerOpen",
        "parameters": [{"$ref": "#/components/parameters/Company"}],
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/OpenInput"}}}},
        "responses": {
          "201": {"description": "created", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/SessionInfo"}}}},
          "422": {"description": "invalid thresholds"},
          "429": {"description": "session limit reached"}
        }
      }
    },
    "/scanner/sessions/{id}": {
      "get": {
        "tags": ["Scanner"], "summary": "Describe a capture session", "operationId": "scannerGet",
        "parameters": [{"$ref": "#/components/parameters/SessionID"}],
        "responses": {
          "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/SessionInfo"}}}},
          "404": {"description": "unknown session"},
          "410": {"description": "closed session"}
        }
      },
      "delete": {
        "tags": ["Scanner"], "summary": "Close a capture session", "operationId": "scannerClose",
        "parameters": [{"$ref": "#/components/parameters/SessionID"}],
        "responses": {"204": {"description": "closed"}, "410": {"description": "already closed"}}
      }
    },
    "/scanner/sessions/{id}/keys": {
      "post": {
        "tags": ["Scanner"], "summary": "Feed key presses", "operationId": "scannerFeed",
        "parameters": [{"$ref": "#/components/parameters/SessionID"}],
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/FeedInput"}}}},
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/FeedResult"}}}}}
      }
    },
    "/scanner/sessions/{id}/submit": {
      "post": {
        "tags": ["Scanner"], "summary": "Resolve a manually entered code", "operationId": "scannerSubmit",
        "parameters": [{"$ref": "#/components/parameters/SessionID"}],
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/SubmitInput"}}}},
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ScanEvent"}}}}}
      }
    },
    "/scanner/sessions/{id}/reset": {
      "post": {
        "tags": ["Scanner"], "summary": "Drop the partial burst", "operationId": "scannerReset",
        "parameters": [{"$ref": "#/components/parameters/SessionID"}],
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/SessionInfo"}}}}}
      }
    },
    "/scanner/sessions/{id}/enabled": {
      "post": {
        "tags": ["Scanner"], "summary": "Turn keystroke classification on or off", "operationId": "scannerEnabled",
        "parameters": [{"$ref": "#/components/parameters/SessionID"}],
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"type": "object", "required": ["enabled"], "properties": {"enabled": {"type": "boolean"}}}}}},
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/SessionInfo"}}}}}
      }
    },
    "/scanner/sessions/{id}/events": {
      "get": {
        "tags": ["Scanner"], "summary": "List queued scan events", "operationId": "scannerEvents",
        "parameters": [
          {"$ref": "#/components/parameters/SessionID"},
          {"name": "after", "in": "query", "schema": {"type": "integer", "minimum": 0}}
        ],
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/EventsResult"}}}}}
      }
    },
    "/scanner/sessions/{id}/stream": {
      "get": {
        "tags": ["Scanner"], "summary": "Websocket: key frames in, scan events out", "operationId": "scannerStream",
        "description": "Client frames: key, keys, submit, reset, enabled. Server frames: event, feed, session, error.",
        "parameters": [{"$ref": "#/components/parameters/SessionID"}],
        "responses": {"101": {"description": "switching protocols"}, "404": {"description": "unknown session"}}
      }
    },
    "/meta/health": {"get": {"tags": ["Meta"], "summary": "Health check", "operationId": "metaHealth", "responses": {"200": {"description": "ok"}}}},
    "/meta/ready": {"get": {"tags": ["Meta"], "summary": "Readiness probe with dependency checks", "operationId": "metaReady", "responses": {"200": {"description": "ok"}}}},
    "/meta/version": {"get": {"tags": ["Meta"], "summary": "Build and version info", "operationId": "metaVersion", "responses": {"200": {"description": "ok"}}}},
    "/meta/service": {"get": {"tags": ["Meta"], "summary": "Service info and uptime", "operationId": "metaService", "responses": {"200": {"description": "ok"}}}},
    "/meta/scanner": {"get": {"tags": ["Meta"], "summary": "Classifier defaults and live session count", "operationId": "metaScanner", "responses": {"200": {"description": "ok"}}}}
  },
  "components": {
    "parameters": {
      "SessionID": {"name": "id", "in": "path", "required": true, "schema": {"type": "string"}},
      "Company": {"name": "X-Company-Id", "in": "header", "required": false, "schema": {"type": "string"}}
    },
    "schemas": {
      "Thresholds": {
        "type": "object",
        "properties": {
          "debounce_ms": {"type": "integer", "example": 150},
          "interval_threshold_ms": {"type": "integer", "example": 50},
          "min_length": {"type": "integer", "example": 6},
          "terminators": {"type": "array", "items": {"type": "string"}, "example": ["Enter"]}
        }
      },
      "OpenInput": {
        "type": "object",
        "properties": {
          "debounce_ms": {"type": "integer", "minimum": 10, "maximum": 5000},
          "interval_threshold_ms": {"type": "integer", "minimum": 1, "maximum": 1000},
          "min_length": {"type": "integer", "minimum": 1, "maximum": 128},
          "terminators": {"type": "array", "items": {"type": "string"}},
          "allow_document": {"type": "boolean"},
          "capture_ids": {"type": "array", "items": {"type": "string"}},
          "disabled": {"type": "boolean"}
        }
      },
      "KeyInput": {
        "type": "object", "required": ["key"],
        "properties": {
          "key": {"type": "string", "example": "A"},
          "at_ms": {"type": "integer", "example": 1714564800123},
          "target": {"type": "string", "enum": ["document", "capture", "input", "textarea", "select", "contenteditable"]},
          "target_id": {"type": "string"}
        }
      },
      "FeedInput": {"type": "object", "required": ["keys"], "properties": {"keys": {"type": "array", "maxItems": 512, "items": {"$ref": "#/components/schemas/KeyInput"}}}},
      "Result": {
        "type": "object",
        "properties": {
          "text": {"type": "string"},
          "is_scanner": {"type": "boolean"},
          "average_interval_ms": {"type": "number"},
          "length": {"type": "integer"},
          "trigger": {"type": "string", "enum": ["idle_timeout", "terminator"]},
          "started_at": {"type": "string", "format": "date-time"},
          "ended_at": {"type": "string", "format": "date-time"}
        }
      },
      "FeedResult": {
        "type": "object",
        "properties": {
          "accepted": {"type": "integer"},
          "ignored": {"type": "integer"},
          "pending": {"type": "integer"},
          "results": {"type": "array", "items": {"$ref": "#/components/schemas/Result"}}
        }
      },
      "SubmitInput": {"type": "object", "required": ["code"], "properties": {"code": {"type": "string", "example": "4006381333931"}}},
      "Product": {
        "type": "object",
        "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "image_url": {"type": "string"}, "category": {"type": "string"}}
      },
      "Outcome": {
        "type": "object",
        "properties": {
          "action": {"type": "string", "enum": ["open_product", "create_product", "ignored", "error"]},
          "barcode": {"type": "string"},
          "product": {"$ref": "#/components/schemas/Product"},
          "message": {"type": "string"}
        }
      },
      "ScanEvent": {
        "type": "object",
        "properties": {
          "seq": {"type": "integer"},
          "id": {"type": "string"},
          "session_id": {"type": "string"},
          "source": {"type": "string", "enum": ["keys", "manual"]},
          "result": {"$ref": "#/components/schemas/Result"},
          "outcome": {"$ref": "#/components/schemas/Outcome"},
          "at": {"type": "string", "format": "date-time"}
        }
      },
      "EventsResult": {
        "type": "object",
        "properties": {"events": {"type": "array", "items": {"$ref": "#/components/schemas/ScanEvent"}}, "last_seq": {"type": "integer"}}
      },
      "SessionInfo": {
        "type": "object",
        "properties": {
          "id": {"type": "string"},
          "company_id": {"type": "string"},
          "user_id": {"type": "string"},
          "enabled": {"type": "boolean"},
          "state": {"type": "string", "enum": ["idle", "accumulating"]},
          "pending": {"type": "integer"},
          "last_seq": {"type": "integer"},
          "thresholds": {"$ref": "#/components/schemas/Thresholds"},
          "created_at": {"type": "string", "format": "date-time"},
          "last_seen_at": {"type": "string", "format": "date-time"}
        }
      }
    }
  }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api/v1",
	Title:            "scanwedge API",
	Description:      "Barcode scanner keystroke capture and catalog lookup",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
