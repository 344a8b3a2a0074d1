package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"commandcenter/services"
)

// Option is one entry of a select input.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormOptions holds the select lists used by the lead, invoice and template
// forms.
type FormOptions struct {
	LeadStatuses    []Option  `json:"leadStatuses"`
	InvoiceStatuses []string  `json:"invoiceStatuses"`
	Categories      []Option  `json:"categories"`
	ProjectTypes    []string  `json:"projectTypes"`
	LeadSources     []string  `json:"leadSources"`
	Units           []string  `json:"units"`
	PaymentTerms    []string  `json:"paymentTerms"`
	Retainage       []float64 `json:"retainage"`
	SortFields      []string  `json:"sortFields"`
}

func buildFormOptions() FormOptions {
	opts := FormOptions{
		ProjectTypes: services.ProjectTypeOptions,
		LeadSources:  services.LeadSourceOptions,
		Units:        services.UnitOptions,
		PaymentTerms: services.PaymentTermsOptions,
		Retainage:    services.RetainageOptions,
		SortFields: []string{
			string(services.SortByValue),
			string(services.SortByScore),
			string(services.SortByFollowUp),
			string(services.SortByCompany),
			string(services.SortByUpdated),
		},
	}
	for _, st := range services.LeadStatuses {
		opts.LeadStatuses = append(opts.LeadStatuses, Option{Value: string(st), Label: st.Label()})
	}
	for _, st := range services.InvoiceStatuses {
		opts.InvoiceStatuses = append(opts.InvoiceStatuses, string(st))
	}
	for _, c := range services.Categories() {
		opts.Categories = append(opts.Categories, Option{Value: string(c), Label: services.CategoryLabel(c)})
	}
	return opts
}

// HandleFormOptions returns the select lists for the front-end forms.
// Route: GET /api/options
func HandleFormOptions() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, buildFormOptions())
	}
}
