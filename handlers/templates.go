package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"commandcenter/collections"
	"commandcenter/services"
	"commandcenter/views"
)

// CategorySummary is one entry of the template library sidebar.
type CategorySummary struct {
	Key   services.Category `json:"key"`
	Label string            `json:"label"`
	Count int               `json:"count"`
}

// TemplateListResponse is returned by the template library endpoint.
type TemplateListResponse struct {
	Categories []CategorySummary   `json:"categories"`
	Templates  []services.Template `json:"templates"`
}

// TemplateDetailResponse is a template with its pre-filled form values.
type TemplateDetailResponse struct {
	Template      services.Template `json:"template"`
	CategoryLabel string            `json:"categoryLabel"`
	Defaults      services.Values   `json:"defaults"`
}

// RenderResponse is the JSON form of a rendered template.
type RenderResponse struct {
	TemplateID string            `json:"templateId"`
	Title      string            `json:"title"`
	Body       string            `json:"body"`
	Missing    []string          `json:"missing"`
	Problems   map[string]string `json:"problems"`
	Complete   bool              `json:"complete"`
}

type renderRequest struct {
	Title  string          `json:"title"`
	Values services.Values `json:"values"`
}

// HandleTemplateList lists the template library, optionally narrowed by
// category and a search query.
// Route: GET /api/templates?category=&q=
func HandleTemplateList() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		catalog := GetCatalog(e.Request)
		query := e.Request.URL.Query()

		var templates []services.Template
		if raw := query.Get("category"); raw != "" {
			category := services.Category(raw)
			if !category.Valid() {
				return apiError(e, http.StatusBadRequest, fmt.Sprintf("unknown category %q", raw))
			}
			templates = catalog.ByCategory(category)
		} else {
			templates = catalog.All()
		}

		if q := strings.TrimSpace(query.Get("q")); q != "" {
			matched := make(map[string]bool)
			for _, t := range catalog.Search(q) {
				matched[t.ID] = true
			}
			filtered := []services.Template{}
			for _, t := range templates {
				if matched[t.ID] {
					filtered = append(filtered, t)
				}
			}
			templates = filtered
		}

		categories := []CategorySummary{}
		for _, c := range catalog.Categories() {
			categories = append(categories, CategorySummary{
				Key:   c,
				Label: services.CategoryLabel(c),
				Count: len(catalog.ByCategory(c)),
			})
		}

		return e.JSON(http.StatusOK, TemplateListResponse{
			Categories: categories,
			Templates:  templates,
		})
	}
}

// HandleTemplateGet returns one template with its default values.
// Route: GET /api/templates/{id}
func HandleTemplateGet() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tmpl, ok := GetCatalog(e.Request).Find(e.Request.PathValue("id"))
		if !ok {
			return notFound(e, "Template")
		}
		return e.JSON(http.StatusOK, TemplateDetailResponse{
			Template:      tmpl,
			CategoryLabel: services.CategoryLabel(tmpl.Category),
			Defaults:      services.DefaultValues(tmpl),
		})
	}
}

// readRenderRequest accepts either a JSON body {"title", "values"} or a form
// post with one field per variable key.
func readRenderRequest(e *core.RequestEvent, tmpl services.Template) (renderRequest, error) {
	var req renderRequest
	if strings.HasPrefix(e.Request.Header.Get("Content-Type"), "application/json") {
		if err := e.BindBody(&req); err != nil {
			return req, err
		}
	} else {
		if err := e.Request.ParseForm(); err != nil {
			return req, err
		}
		req.Title = e.Request.FormValue("title")
		req.Values = services.Values{}
		for _, v := range tmpl.Variables {
			if val := e.Request.FormValue(v.Key); val != "" {
				req.Values[v.Key] = val
			}
		}
	}
	if req.Values == nil {
		req.Values = services.Values{}
	}
	if strings.TrimSpace(req.Title) == "" {
		req.Title = tmpl.Name
	}
	return req, nil
}

func renderResult(tmpl services.Template, req renderRequest) RenderResponse {
	filled := services.MergeValues(services.DefaultValues(tmpl), req.Values)
	missing := services.MissingRequired(tmpl, filled)
	return RenderResponse{
		TemplateID: tmpl.ID,
		Title:      req.Title,
		Body:       services.RenderTemplate(tmpl, req.Values),
		Missing:    missing,
		Problems:   services.ValidateValues(tmpl, req.Values),
		Complete:   len(missing) == 0,
	}
}

// HandleTemplateRender renders a template with the posted values.
// format=json (default) returns the body with missing fields and format
// problems; md and pdf download the document.
// Route: POST /api/templates/{id}/render?format=json|md|pdf
func HandleTemplateRender() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tmpl, ok := GetCatalog(e.Request).Find(e.Request.PathValue("id"))
		if !ok {
			return notFound(e, "Template")
		}
		format, ok := exportFormat(e, "json", "json", "md", "pdf")
		if !ok {
			return apiError(e, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		}
		req, err := readRenderRequest(e, tmpl)
		if err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		result := renderResult(tmpl, req)

		switch format {
		case "md":
			return sendAttachment(e, contentTypeMarkdown, tmpl.ID+".md", []byte(result.Body))
		case "pdf":
			pdfBytes, err := services.GenerateDocumentPDF(result.Title, result.Body, time.Now())
			if err != nil {
				log.Printf("template_render: pdf for %s: %v", tmpl.ID, err)
				return apiError(e, http.StatusInternalServerError, "Failed to generate PDF file")
			}
			return sendAttachment(e, contentTypePDF, tmpl.ID+".pdf", pdfBytes)
		}
		return e.JSON(http.StatusOK, result)
	}
}

// HandleTemplatePreview renders the live preview pane as HTML.
// Route: POST /templates/{id}/preview
func HandleTemplatePreview() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tmpl, ok := GetCatalog(e.Request).Find(e.Request.PathValue("id"))
		if !ok {
			return notFound(e, "Template")
		}
		req, err := readRenderRequest(e, tmpl)
		if err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		result := renderResult(tmpl, req)

		labels := make(map[string]string, len(tmpl.Variables))
		for _, v := range tmpl.Variables {
			labels[v.Key] = v.Label
		}
		missing := make([]string, len(result.Missing))
		for i, key := range result.Missing {
			missing[i] = labels[key]
		}

		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		return views.DocumentPreview(views.PreviewData{
			Title:    result.Title,
			Subtitle: services.CategoryLabel(tmpl.Category) + " · v" + tmpl.Version,
			Body:     result.Body,
			Missing:  missing,
		}).Render(e.Request.Context(), e.Response)
	}
}

// HandleDocumentSave renders a template and stores the result.
// Route: POST /api/templates/{id}/documents
func HandleDocumentSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tmpl, ok := GetCatalog(e.Request).Find(e.Request.PathValue("id"))
		if !ok {
			return notFound(e, "Template")
		}
		req, err := readRenderRequest(e, tmpl)
		if err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		result := renderResult(tmpl, req)

		doc, err := collections.SaveDocument(app, collections.GeneratedDocument{
			TemplateID:   tmpl.ID,
			TemplateName: tmpl.Name,
			Title:        result.Title,
			Body:         result.Body,
			Values:       req.Values,
			Missing:      result.Missing,
		})
		if err != nil {
			log.Printf("document_save: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to save document")
		}
		if isHTMX(e) {
			SetToast(e, toastSuccess, fmt.Sprintf("Saved %q", doc.Title))
		}
		return e.JSON(http.StatusCreated, doc)
	}
}

// HandleDocumentList lists stored documents, newest first.
// Route: GET /api/documents?template=
func HandleDocumentList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		docs, err := collections.LoadDocuments(app, e.Request.URL.Query().Get("template"))
		if err != nil {
			log.Printf("document_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load documents")
		}
		return e.JSON(http.StatusOK, docs)
	}
}

// HandleDocumentGet returns a stored document as JSON or downloads it.
// Route: GET /api/documents/{id}?format=json|md|pdf
func HandleDocumentGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, err := collections.FindDocument(app, e.Request.PathValue("id"))
		if err != nil {
			return notFound(e, "Document")
		}
		format, ok := exportFormat(e, "json", "json", "md", "pdf")
		if !ok {
			return apiError(e, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		}

		switch format {
		case "md":
			return sendAttachment(e, contentTypeMarkdown, doc.Title+".md", []byte(doc.Body))
		case "pdf":
			pdfBytes, err := services.GenerateDocumentPDF(doc.Title, doc.Body, time.Now())
			if err != nil {
				log.Printf("document_get: pdf for %s: %v", doc.ID, err)
				return apiError(e, http.StatusInternalServerError, "Failed to generate PDF file")
			}
			return sendAttachment(e, contentTypePDF, doc.Title+".pdf", pdfBytes)
		}
		return e.JSON(http.StatusOK, doc)
	}
}
