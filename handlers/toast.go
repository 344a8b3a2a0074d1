package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// Toast kinds understood by the front end.
const (
	toastSuccess = "success"
	toastError   = "error"
)

// SetToast sets the HX-Trigger response header to show a toast notification
// on the client via HTMX. If an HX-Trigger header already exists, the toast
// payload is merged into the existing JSON object.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	payload := map[string]string{"message": message, "type": toastType}

	merged := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &merged); err != nil {
			log.Printf("toast: existing HX-Trigger is not valid JSON, overwriting: %v", err)
			merged = map[string]any{}
		}
	}
	merged["showToast"] = payload

	data, err := json.Marshal(merged)
	if err != nil {
		log.Printf("toast: failed to marshal HX-Trigger JSON: %v", err)
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))
}

func isHTMX(e *core.RequestEvent) bool {
	return e.Request.Header.Get("HX-Request") == "true"
}

// apiError answers with {"error": message}. HTMX callers also get an error
// toast, and HX-Reswap: none keeps the body out of the DOM.
func apiError(e *core.RequestEvent, status int, message string) error {
	if isHTMX(e) {
		SetToast(e, toastError, message)
		e.Response.Header().Set("HX-Reswap", "none")
	}
	return e.JSON(status, map[string]string{"error": message})
}

func notFound(e *core.RequestEvent, what string) error {
	return apiError(e, http.StatusNotFound, what+" not found")
}
