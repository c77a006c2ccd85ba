//go:build swagger

package httpapi

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"
)

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "sessiond API",
    "description": "HTTP API for exclusive AR/pose vision session management.",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {
    "/status": {"get": {"summary": "Coordinator status", "produces": ["application/json"]}},
    "/engines": {"get": {"summary": "List selectable engines", "produces": ["application/json"]}},
    "/switch": {"post": {"summary": "Switch mode/engine", "consumes": ["application/json"], "produces": ["application/json"]}},
    "/reset": {"post": {"summary": "Reset AR placements", "produces": ["application/json"]}},
    "/place": {"post": {"summary": "Place a marker at the detected surface", "produces": ["application/json"]}},
    "/events": {"get": {"summary": "Lifecycle and result event stream", "produces": ["text/event-stream"]}}
  }
}`

func init() {
	swag.Register("swagger", &swag.Spec{
		InfoInstanceName: "swagger",
		SwaggerTemplate:  docTemplate,
	})
}

// MountSwagger serves the interactive API docs at /swagger/.
func MountSwagger(r chi.Router) {
	r.Get("/swagger/*", httpSwagger.Handler())
}
