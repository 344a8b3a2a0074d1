package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"commandcenter/services"
)

type contextKey string

const CatalogKey contextKey = "templateCatalog"

// GetCatalog extracts the template catalog from the request context, falling
// back to the built-in catalog.
func GetCatalog(r *http.Request) *services.Catalog {
	if val, ok := r.Context().Value(CatalogKey).(*services.Catalog); ok && val != nil {
		return val
	}
	return services.DefaultCatalog()
}

// CatalogMiddleware stores catalog in the request context so template
// handlers serve the catalog loaded at startup.
func CatalogMiddleware(catalog *services.Catalog) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ctx := context.WithValue(e.Request.Context(), CatalogKey, catalog)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

// RequestLogger logs method, path, status and duration of every request.
func RequestLogger() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		start := time.Now()
		err := e.Next()
		log.Printf("%s %s %d %s", e.Request.Method, e.Request.URL.Path, e.Status(), time.Since(start).Round(time.Millisecond))
		return err
	}
}
