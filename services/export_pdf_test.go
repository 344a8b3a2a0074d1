package services

import (
	"strings"
	"testing"
)

func assertPDF(t *testing.T, result []byte, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("generate PDF error = %v", err)
	}
	if len(result) < 5 || string(result[:5]) != "%PDF-" {
		t.Fatalf("result is not a PDF (%d bytes)", len(result))
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	inv := Invoice{
		InvoiceNumber:     "INV-2026-0001",
		ProjectName:       "Lake Nona Medical Office",
		ClientCompany:     "Tavistock Development",
		ClientName:        "Sam Lee",
		ContractorName:    "Construct IQ Builders",
		ContractorLicense: "CGC1531234",
		InvoiceDate:       "2026-03-01",
		DueDate:           "2026-03-31",
		Status:            InvoiceSent,
		RetainagePercent:  10,
		TaxPercent:        6.5,
		PaymentTerms:      "Net 30",
		Notes:             "Pay application #3 per AIA G702.",
		LineItems: []LineItem{
			{Description: "Concrete slab", Division: "03 30 00", Quantity: 4200, Unit: "SF", UnitPrice: 8.75},
			{Description: "Framing", Division: "06 10 00", Quantity: 1, Unit: "LS", UnitPrice: 48500},
		},
	}
	result, err := GenerateInvoicePDF(inv, exportDay)
	assertPDF(t, result, err)
}

func TestGenerateInvoicePDF_Empty(t *testing.T) {
	result, err := GenerateInvoicePDF(Invoice{InvoiceNumber: "INV-0"}, exportDay)
	assertPDF(t, result, err)
}

func TestGenerateDocumentPDF(t *testing.T) {
	tmpl, _ := DefaultCatalog().Find("change-order")
	body := RenderTemplate(tmpl, Values{"CO_NUMBER": "CO-007", "CHANGE_DESCRIPTION": strings.Repeat("Relocate storefront doors. ", 30)})
	result, err := GenerateDocumentPDF(tmpl.Name, body, exportDay)
	assertPDF(t, result, err)
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{"short", "hello world", 20, []string{"hello world"}},
		{"wraps on words", "aaa bbb ccc", 7, []string{"aaa bbb", "ccc"}},
		{"splits long word", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"empty", "   ", 10, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.in, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("wrapText() = %q, want %q", got, tt.want)
			}
		})
	}
}
