package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"
)

// Download content types.
const (
	contentTypeCSV      = "text/csv; charset=utf-8"
	contentTypeXLSX     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF      = "application/pdf"
	contentTypeMarkdown = "text/markdown; charset=utf-8"
)

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

// sendAttachment writes data as a file download.
func sendAttachment(e *core.RequestEvent, contentType, filename string, data []byte) error {
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, sanitizeFilename(filename)))
	e.Response.WriteHeader(http.StatusOK)
	_, err := e.Response.Write(data)
	return err
}

// exportFormat reads the format query parameter, falling back to def. It
// reports false when the value is not one of allowed.
func exportFormat(e *core.RequestEvent, def string, allowed ...string) (string, bool) {
	format := strings.ToLower(strings.TrimSpace(e.Request.URL.Query().Get("format")))
	if format == "" {
		return def, true
	}
	for _, a := range allowed {
		if format == a {
			return format, true
		}
	}
	return format, false
}
