package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"commandcenter/collections"
	"commandcenter/services"
)

// InvoiceListResponse is the invoice register with its summary cards.
type InvoiceListResponse struct {
	Invoices []services.Invoice      `json:"invoices"`
	Metrics  services.BillingMetrics `json:"metrics"`
}

// BillingSummaryResponse is the billing dashboard: metrics and A/R aging.
type BillingSummaryResponse struct {
	AsOf    string                 `json:"asOf"`
	Metrics services.BillingMetrics `json:"metrics"`
	Aging   []services.AgingBucket  `json:"aging"`
}

// filterInvoices keeps invoices in status; an empty status keeps all.
func filterInvoices(invoices []services.Invoice, status services.InvoiceStatus) []services.Invoice {
	if status == "" {
		return invoices
	}
	out := []services.Invoice{}
	for _, inv := range invoices {
		if inv.Status == status {
			out = append(out, inv)
		}
	}
	return out
}

func invoiceStatusParam(e *core.RequestEvent) (services.InvoiceStatus, error) {
	raw := e.Request.URL.Query().Get("status")
	if raw == "" || raw == "all" {
		return "", nil
	}
	status := services.InvoiceStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("unknown invoice status %q", raw)
	}
	return status, nil
}

// HandleInvoiceList returns invoices with computed totals.
// Route: GET /api/invoices?status=
func HandleInvoiceList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		status, err := invoiceStatusParam(e)
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}
		invoices, err := collections.LoadInvoices(app)
		if err != nil {
			log.Printf("invoice_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load invoices")
		}
		return e.JSON(http.StatusOK, InvoiceListResponse{
			Invoices: filterInvoices(invoices, status),
			Metrics:  services.GetBillingMetrics(invoices),
		})
	}
}

// HandleInvoiceGet returns one invoice with line items and totals.
// Route: GET /api/invoices/{id}
func HandleInvoiceGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		inv, err := collections.FindInvoice(app, e.Request.PathValue("id"))
		if err != nil {
			return notFound(e, "Invoice")
		}
		return e.JSON(http.StatusOK, inv)
	}
}

// HandleInvoiceExport downloads the invoice register.
// Route: GET /api/invoices/export?format=csv|xlsx&status=
func HandleInvoiceExport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		format, ok := exportFormat(e, "csv", "csv", "xlsx")
		if !ok {
			return apiError(e, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		}
		status, err := invoiceStatusParam(e)
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}
		invoices, err := collections.LoadInvoices(app)
		if err != nil {
			log.Printf("invoice_export: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load invoices")
		}
		invoices = filterInvoices(invoices, status)

		now := time.Now()
		filename := fmt.Sprintf("invoices-%s.%s", now.Format(services.DateLayout), format)
		if format == "xlsx" {
			xlsxBytes, err := services.GenerateInvoicesExcel(invoices, now)
			if err != nil {
				log.Printf("invoice_export: failed to generate: %v", err)
				return apiError(e, http.StatusInternalServerError, "Failed to generate Excel file")
			}
			return sendAttachment(e, contentTypeXLSX, filename, xlsxBytes)
		}

		csv, err := services.InvoicesToCSV(invoices)
		if err != nil {
			log.Printf("invoice_export: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate CSV file")
		}
		return sendAttachment(e, contentTypeCSV, filename, []byte(csv))
	}
}

// HandleInvoiceDownload downloads a single invoice as a one-row CSV or a
// printable PDF.
// Route: GET /api/invoices/{id}/export?format=pdf|csv
func HandleInvoiceDownload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		inv, err := collections.FindInvoice(app, e.Request.PathValue("id"))
		if err != nil {
			return notFound(e, "Invoice")
		}
		format, ok := exportFormat(e, "pdf", "pdf", "csv")
		if !ok {
			return apiError(e, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		}

		filename := inv.InvoiceNumber + "." + format
		if format == "csv" {
			csv, err := services.InvoicesToCSV([]services.Invoice{inv})
			if err != nil {
				log.Printf("invoice_download: %v", err)
				return apiError(e, http.StatusInternalServerError, "Failed to generate CSV file")
			}
			return sendAttachment(e, contentTypeCSV, filename, []byte(csv))
		}

		pdfBytes, err := services.GenerateInvoicePDF(inv, time.Now())
		if err != nil {
			log.Printf("invoice_download: failed to generate %s: %v", inv.InvoiceNumber, err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate PDF file")
		}
		return sendAttachment(e, contentTypePDF, filename, pdfBytes)
	}
}

// HandleBillingSummary returns billing metrics and A/R aging as of a date.
// Route: GET /api/billing/summary?asOf=YYYY-MM-DD
func HandleBillingSummary(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		asOf := time.Now()
		if raw := e.Request.URL.Query().Get("asOf"); raw != "" {
			parsed, err := time.Parse(services.DateLayout, raw)
			if err != nil {
				return apiError(e, http.StatusBadRequest, "asOf must be YYYY-MM-DD")
			}
			asOf = parsed
		}
		invoices, err := collections.LoadInvoices(app)
		if err != nil {
			log.Printf("billing_summary: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load invoices")
		}
		return e.JSON(http.StatusOK, BillingSummaryResponse{
			AsOf:    asOf.Format(services.DateLayout),
			Metrics: services.GetBillingMetrics(invoices),
			Aging:   services.AgingBuckets(invoices, asOf),
		})
	}
}
