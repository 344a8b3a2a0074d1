package handlers

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"commandcenter/collections"
	"commandcenter/services"
)

// LeadListResponse is the CRM table with its headline numbers.
type LeadListResponse struct {
	Leads        []services.CRMLead          `json:"leads"`
	Metrics      services.PipelineMetrics    `json:"metrics"`
	StatusCounts map[services.LeadStatus]int `json:"statusCounts"`
}

// leadTable applies the status, q, sort and dir query parameters to leads.
// Without a sort parameter the table is ordered by score, highest first.
// Errors are always caused by a bad parameter.
func leadTable(leads []services.CRMLead, query url.Values) ([]services.CRMLead, error) {
	var status services.LeadStatus
	if raw := query.Get("status"); raw != "" && raw != "all" {
		var err error
		status, err = services.ParseLeadStatus(raw)
		if err != nil {
			return nil, err
		}
	}
	shown := services.FilterLeads(leads, services.LeadQuery{Status: status, Search: query.Get("q")})

	field := services.SortByScore
	if raw := query.Get("sort"); raw != "" {
		field = services.LeadSortField(raw)
		if !field.Valid() {
			return nil, fmt.Errorf("unknown sort field %q", raw)
		}
	}
	return services.SortLeads(shown, field, !strings.EqualFold(query.Get("dir"), "asc")), nil
}

// HandleLeadList returns the filtered lead table with pipeline metrics
// computed over every lead.
// Route: GET /api/leads?status=&q=&sort=&dir=
func HandleLeadList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		all, err := collections.LoadLeads(app)
		if err != nil {
			log.Printf("lead_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load leads")
		}
		shown, err := leadTable(all, e.Request.URL.Query())
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}
		return e.JSON(http.StatusOK, LeadListResponse{
			Leads:        shown,
			Metrics:      services.GetPipelineMetrics(all),
			StatusCounts: services.StatusCounts(all),
		})
	}
}

// HandleLeadMetrics returns the pipeline summary cards.
// Route: GET /api/leads/metrics
func HandleLeadMetrics(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		leads, err := collections.LoadLeads(app)
		if err != nil {
			log.Printf("lead_metrics: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load leads")
		}
		return e.JSON(http.StatusOK, services.GetPipelineMetrics(leads))
	}
}

// HandleLeadStatusUpdate moves a lead to another pipeline stage. Any stage
// may follow any other.
// Route: PATCH /api/leads/{id}/status
func HandleLeadStatusUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := collections.FindLead(app, e.Request.PathValue("id"))
		if err != nil {
			return notFound(e, "Lead")
		}

		var body struct {
			Status string `json:"status" form:"status"`
		}
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		status, err := services.ParseLeadStatus(body.Status)
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		lead, err := collections.SetLeadStatus(app, record, status)
		if err != nil {
			log.Printf("lead_status: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to update lead")
		}
		if isHTMX(e) {
			SetToast(e, toastSuccess, fmt.Sprintf("%s moved to %s", lead.Company, status.Label()))
		}
		return e.JSON(http.StatusOK, lead)
	}
}

// HandleLeadExport downloads the lead table, honoring the same filters as
// the list endpoint.
// Route: GET /api/leads/export?format=csv|xlsx
func HandleLeadExport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		format, ok := exportFormat(e, "csv", "csv", "xlsx")
		if !ok {
			return apiError(e, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		}
		all, err := collections.LoadLeads(app)
		if err != nil {
			log.Printf("lead_export: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load leads")
		}
		shown, err := leadTable(all, e.Request.URL.Query())
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		now := time.Now()
		filename := fmt.Sprintf("crm-leads-%s.%s", now.Format(services.DateLayout), format)
		if format == "xlsx" {
			xlsxBytes, err := services.GenerateLeadsExcel(shown, now)
			if err != nil {
				log.Printf("lead_export: failed to generate: %v", err)
				return apiError(e, http.StatusInternalServerError, "Failed to generate Excel file")
			}
			return sendAttachment(e, contentTypeXLSX, filename, xlsxBytes)
		}

		csv, err := services.LeadsToCSV(shown)
		if err != nil {
			log.Printf("lead_export: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate CSV file")
		}
		return sendAttachment(e, contentTypeCSV, filename, []byte(csv))
	}
}

// HandleLeadImport validates an uploaded .csv or .xlsx lead file. With
// commit=1 the valid rows are saved; rows with errors are never saved.
// With report=xlsx the validation errors download as a workbook.
// Route: POST /api/leads/import?commit=1&report=xlsx
func HandleLeadImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return apiError(e, http.StatusBadRequest, "File too large or invalid form data")
		}
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ValidateLeadFile(file, header.Filename)
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		query := e.Request.URL.Query()
		if query.Get("report") == "xlsx" {
			report, err := services.GenerateErrorReport(result.Errors)
			if err != nil {
				log.Printf("lead_import: error report: %v", err)
				return apiError(e, http.StatusInternalServerError, "Failed to generate error report")
			}
			return sendAttachment(e, contentTypeXLSX, "lead-import-errors.xlsx", report)
		}

		if query.Get("commit") != "1" {
			return e.JSON(http.StatusOK, result)
		}

		saved := make([]services.CRMLead, 0, len(result.Leads))
		err = app.RunInTransaction(func(txApp core.App) error {
			for _, lead := range result.Leads {
				s, err := collections.SaveLead(txApp, lead)
				if err != nil {
					return err
				}
				saved = append(saved, s)
			}
			return nil
		})
		if err != nil {
			log.Printf("lead_import: commit: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to save imported leads")
		}
		result.Leads = saved
		if isHTMX(e) {
			SetToast(e, toastSuccess, fmt.Sprintf("Imported %d leads", len(saved)))
		}
		return e.JSON(http.StatusCreated, result)
	}
}
