// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"commandcenter/collections"
	"commandcenter/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestLead creates a lead record for company in the given stage and
// returns it. The project value is 100000 and the score 50.
func CreateTestLead(t *testing.T, app *pocketbase.PocketBase, company string, status services.LeadStatus) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.Leads)
	if err != nil {
		t.Fatalf("failed to find %s collection: %v", collections.Leads, err)
	}

	record := core.NewRecord(col)
	record.Set("company", company)
	record.Set("contact_name", "Test Contact")
	record.Set("project_name", company+" Project")
	record.Set("project_type", "Commercial")
	record.Set("project_value", 100000)
	record.Set("status", string(status))
	record.Set("score", 50)
	record.Set("tags", []string{})

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test lead: %v", err)
	}

	return record
}

// CreateTestInvoice creates an invoice with lines line items of 1 x 100.00
// each, no retainage or tax, and returns the invoice record.
func CreateTestInvoice(t *testing.T, app *pocketbase.PocketBase, number string, status services.InvoiceStatus, lines int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.Invoices)
	if err != nil {
		t.Fatalf("failed to find %s collection: %v", collections.Invoices, err)
	}
	itemCol, err := app.FindCollectionByNameOrId(collections.InvoiceLineItems)
	if err != nil {
		t.Fatalf("failed to find %s collection: %v", collections.InvoiceLineItems, err)
	}

	record := core.NewRecord(col)
	record.Set("invoice_number", number)
	record.Set("project_name", "Test Project")
	record.Set("client_company", "Test Client")
	record.Set("contractor_name", "Test Contractor")
	record.Set("status", string(status))
	record.Set("invoice_date", "2026-01-01")
	record.Set("due_date", "2026-01-31")
	record.Set("payment_terms", "Net 30")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test invoice: %v", err)
	}

	for i := range lines {
		item := core.NewRecord(itemCol)
		item.Set("invoice", record.Id)
		item.Set("sort_order", i+1)
		item.Set("description", fmt.Sprintf("Line %d", i+1))
		item.Set("quantity", 1)
		item.Set("unit", "LS")
		item.Set("unit_price", 100)
		if err := app.Save(item); err != nil {
			t.Fatalf("failed to save test line item: %v", err)
		}
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML not to contain %q\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
