package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"commandcenter/collections"
	"commandcenter/services"
)

// DashboardResponse holds the home screen cards.
type DashboardResponse struct {
	Pipeline      services.PipelineMetrics    `json:"pipeline"`
	StatusCounts  map[services.LeadStatus]int `json:"statusCounts"`
	Billing       services.BillingMetrics     `json:"billing"`
	TemplateCount int                         `json:"templateCount"`
	DocumentCount int                         `json:"documentCount"`
}

// HandleDashboard returns the summary of every module.
// Route: GET /api/dashboard
func HandleDashboard(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		leads, err := collections.LoadLeads(app)
		if err != nil {
			log.Printf("dashboard: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load leads")
		}
		invoices, err := collections.LoadInvoices(app)
		if err != nil {
			log.Printf("dashboard: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load invoices")
		}
		docCount, err := app.CountRecords(collections.GeneratedDocuments)
		if err != nil {
			log.Printf("dashboard: count documents: %v", err)
		}

		return e.JSON(http.StatusOK, DashboardResponse{
			Pipeline:      services.GetPipelineMetrics(leads),
			StatusCounts:  services.StatusCounts(leads),
			Billing:       services.GetBillingMetrics(invoices),
			TemplateCount: GetCatalog(e.Request).Len(),
			DocumentCount: int(docCount),
		})
	}
}
