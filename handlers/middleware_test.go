package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"commandcenter/services"
)

func TestGetCatalog_FromContext(t *testing.T) {
	custom, err := services.NewCatalog(nil)
	if err != nil {
		t.Fatalf("NewCatalog() error: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), CatalogKey, custom))

	if got := GetCatalog(req); got != custom {
		t.Errorf("expected catalog from context, got %p", got)
	}
}

func TestGetCatalog_NotInContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetCatalog(req); got != services.DefaultCatalog() {
		t.Error("expected built-in catalog fallback")
	}
}

func TestCatalogMiddleware_StoresCatalog(t *testing.T) {
	custom, _ := services.NewCatalog(nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	e := newTestRequestEvent(nil, req, httptest.NewRecorder())

	if err := CatalogMiddleware(custom)(e); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if got := GetCatalog(e.Request); got != custom {
		t.Error("expected middleware to store the catalog on the request")
	}
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	e := newTestRequestEvent(nil, req, httptest.NewRecorder())

	if err := RequestLogger()(e); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
}
