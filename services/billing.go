// Package services holds the pure calculation, rendering and export logic
// for the command center: document templates, CRM leads and invoices.
package services

import (
	"math"
	"strconv"
	"time"
)

// InvoiceStatus is the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// InvoiceStatuses lists every invoice status.
var InvoiceStatuses = []InvoiceStatus{InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue}

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue:
		return true
	}
	return false
}

// Open reports whether the invoice still counts toward receivables.
func (s InvoiceStatus) Open() bool {
	return s == InvoiceSent || s == InvoiceOverdue
}

// LineItem is one billed line. Division is a free-text CSI MasterFormat code.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Division    string  `json:"division,omitempty"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

// Invoice is an AIA-style progress billing invoice.
type Invoice struct {
	ID                string        `json:"id"`
	InvoiceNumber     string        `json:"invoiceNumber"`
	ProjectName       string        `json:"projectName"`
	ClientCompany     string        `json:"clientCompany"`
	ClientName        string        `json:"clientName,omitempty"`
	ClientEmail       string        `json:"clientEmail,omitempty"`
	ContractorName    string        `json:"contractorName"`
	ContractorEmail   string        `json:"contractorEmail,omitempty"`
	ContractorLicense string        `json:"contractorLicense,omitempty"`
	LineItems         []LineItem    `json:"lineItems"`
	Subtotal          float64       `json:"subtotal"`
	RetainagePercent  float64       `json:"retainagePercent"`
	RetainageAmount   float64       `json:"retainageAmount"`
	TaxPercent        float64       `json:"taxPercent"`
	TaxAmount         float64       `json:"taxAmount"`
	PreviousPayments  float64       `json:"previousPayments"`
	TotalDue          float64       `json:"totalDue"`
	Status            InvoiceStatus `json:"status"`
	InvoiceDate       string        `json:"invoiceDate"`
	DueDate           string        `json:"dueDate"`
	PaymentTerms      string        `json:"paymentTerms"`
	Notes             string        `json:"notes,omitempty"`
}

// InvoiceTotals holds the derived amounts of an invoice.
type InvoiceTotals struct {
	Subtotal        float64 `json:"subtotal"`
	RetainageAmount float64 `json:"retainageAmount"`
	TaxAmount       float64 `json:"taxAmount"`
	TotalDue        float64 `json:"totalDue"`
}

// round2 rounds half-up to 2 decimal places. The nudge absorbs binary
// representation error so 1.005 rounds to 1.01.
func round2(x float64) float64 {
	return math.Round(x*100+math.Copysign(1e-7, x)) / 100
}

// LineAmount returns quantity * unit price, unrounded.
func LineAmount(item LineItem) float64 {
	return item.Quantity * item.UnitPrice
}

// ComputeInvoiceTotals runs the billing pipeline
// subtotal -> retainage -> tax -> previous payments.
// Line amounts are summed unrounded and the subtotal is rounded once.
// Retainage is taken on the subtotal and tax on the subtotal net of
// retainage, each rounded once. TotalDue keeps its sign; a credit balance is
// negative.
func ComputeInvoiceTotals(items []LineItem, retainagePercent, taxPercent, previousPayments float64) InvoiceTotals {
	var raw float64
	for _, item := range items {
		raw += LineAmount(item)
	}
	subtotal := round2(raw)
	retainage := round2(subtotal * retainagePercent / 100)
	tax := round2((subtotal - retainage) * taxPercent / 100)
	return InvoiceTotals{
		Subtotal:        subtotal,
		RetainageAmount: retainage,
		TaxAmount:       tax,
		TotalDue:        round2(subtotal - retainage + tax - previousPayments),
	}
}

// StandardRetainagePercent is the usual retainage schedule: 10% withheld
// until the project is 50% complete, then 5% until substantial completion.
func StandardRetainagePercent(percentComplete float64) float64 {
	if percentComplete < 50 {
		return 10
	}
	return 5
}

// CalculateInvoice returns a copy of inv with every line amount and the
// invoice totals filled in from ComputeInvoiceTotals. inv is not modified.
func CalculateInvoice(inv Invoice) Invoice {
	out := inv
	out.LineItems = make([]LineItem, len(inv.LineItems))
	for i, item := range inv.LineItems {
		item.Amount = LineAmount(item)
		out.LineItems[i] = item
	}
	totals := ComputeInvoiceTotals(out.LineItems, inv.RetainagePercent, inv.TaxPercent, inv.PreviousPayments)
	out.Subtotal = totals.Subtotal
	out.RetainageAmount = totals.RetainageAmount
	out.TaxAmount = totals.TaxAmount
	out.TotalDue = totals.TotalDue
	return out
}

// BillingMetrics are the summary cards of the billing screen.
type BillingMetrics struct {
	TotalBilled   float64 `json:"totalBilled"`
	Paid          float64 `json:"paid"`
	OutstandingAR float64 `json:"outstandingAR"`
	Draft         float64 `json:"draft"`
}

// GetBillingMetrics sums subtotals across all invoices and amounts due by
// status: paid, open receivables (sent + overdue) and drafts.
func GetBillingMetrics(invoices []Invoice) BillingMetrics {
	var m BillingMetrics
	for _, inv := range invoices {
		inv = CalculateInvoice(inv)
		m.TotalBilled += inv.Subtotal
		switch {
		case inv.Status == InvoicePaid:
			m.Paid += inv.TotalDue
		case inv.Status.Open():
			m.OutstandingAR += inv.TotalDue
		case inv.Status == InvoiceDraft:
			m.Draft += inv.TotalDue
		}
	}
	m.TotalBilled = round2(m.TotalBilled)
	m.Paid = round2(m.Paid)
	m.OutstandingAR = round2(m.OutstandingAR)
	m.Draft = round2(m.Draft)
	return m
}

// AgingBucket is one column of the A/R aging report.
type AgingBucket struct {
	Label   string  `json:"label"`
	MinDays int     `json:"minDays"`
	MaxDays int     `json:"maxDays"` // -1 means unbounded
	Count   int     `json:"count"`
	Amount  float64 `json:"amount"`
}

// AgingBuckets groups open invoices by days past due as of asOf. Invoices
// not yet due, or with an unparseable due date, land in "Current".
func AgingBuckets(invoices []Invoice, asOf time.Time) []AgingBucket {
	buckets := []AgingBucket{
		{Label: "Current", MinDays: 0, MaxDays: 0},
		{Label: "1-30", MinDays: 1, MaxDays: 30},
		{Label: "31-60", MinDays: 31, MaxDays: 60},
		{Label: "61-90", MinDays: 61, MaxDays: 90},
		{Label: "90+", MinDays: 91, MaxDays: -1},
	}
	asOfDay := truncateDay(asOf)
	for _, inv := range invoices {
		if !inv.Status.Open() {
			continue
		}
		inv = CalculateInvoice(inv)
		days := 0
		if due, err := time.Parse(DateLayout, inv.DueDate); err == nil {
			days = max(int(asOfDay.Sub(truncateDay(due)).Hours()/24), 0)
		}
		for i := range buckets {
			if buckets[i].contains(days) {
				buckets[i].Count++
				buckets[i].Amount = round2(buckets[i].Amount + inv.TotalDue)
				break
			}
		}
	}
	return buckets
}

func (b AgingBucket) contains(days int) bool {
	return days >= b.MinDays && (b.MaxDays < 0 || days <= b.MaxDays)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var invoiceColumns = []column[Invoice]{
	{"Invoice #", func(i Invoice) string { return i.InvoiceNumber }},
	{"Project", func(i Invoice) string { return i.ProjectName }},
	{"Client", func(i Invoice) string { return i.ClientCompany }},
	{"Contractor", func(i Invoice) string { return i.ContractorName }},
	{"Invoice Date", func(i Invoice) string { return i.InvoiceDate }},
	{"Due Date", func(i Invoice) string { return i.DueDate }},
	{"Status", func(i Invoice) string { return string(i.Status) }},
	{"Line Items", func(i Invoice) string { return strconv.Itoa(len(i.LineItems)) }},
	{"Subtotal", func(i Invoice) string { return FormatAmount(i.Subtotal) }},
	{"Retainage %", func(i Invoice) string { return strconv.FormatFloat(i.RetainagePercent, 'f', -1, 64) }},
	{"Retainage", func(i Invoice) string { return FormatAmount(i.RetainageAmount) }},
	{"Tax %", func(i Invoice) string { return strconv.FormatFloat(i.TaxPercent, 'f', -1, 64) }},
	{"Tax", func(i Invoice) string { return FormatAmount(i.TaxAmount) }},
	{"Previous Payments", func(i Invoice) string { return FormatAmount(i.PreviousPayments) }},
	{"Total Due", func(i Invoice) string { return FormatAmount(i.TotalDue) }},
	{"Payment Terms", func(i Invoice) string { return i.PaymentTerms }},
	{"Notes", func(i Invoice) string { return i.Notes }},
}

// BillingCSVHeaders returns the invoice export header row.
func BillingCSVHeaders() []string {
	return columnHeaders(invoiceColumns)
}

// InvoiceToCSVRow builds the export row for one invoice, positionally
// matching BillingCSVHeaders. Totals come from CalculateInvoice.
func InvoiceToCSVRow(inv Invoice) []string {
	return columnRow(invoiceColumns, CalculateInvoice(inv))
}

// InvoicesToCSV exports invoices in the given order.
func InvoicesToCSV(invoices []Invoice) (string, error) {
	rows := make([][]string, len(invoices))
	for i, inv := range invoices {
		rows[i] = InvoiceToCSVRow(inv)
	}
	return ToCSV(BillingCSVHeaders(), rows)
}
