package collections_test

import (
	"fmt"
	"testing"
	"time"

	"commandcenter/collections"
	"commandcenter/services"
	"commandcenter/testhelpers"
)

func TestSaveLead_RoundTrip(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	saved, err := collections.SaveLead(app, services.CRMLead{
		ID:           "ignored",
		Company:      "Unicorp",
		ContactName:  "Chuck",
		Email:        "chuck@unicorp.com",
		ProjectName:  "Retail Center",
		ProjectType:  "Commercial",
		ProjectValue: 2_400_000,
		Status:       services.LeadProposalSent,
		Score:        85,
		Tags:         []string{"retail", "lake-nona"},
	})
	if err != nil {
		t.Fatalf("SaveLead() error: %v", err)
	}
	if saved.ID == "" || saved.ID == "ignored" {
		t.Errorf("expected a generated record id, got %q", saved.ID)
	}
	if saved.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	leads, err := collections.LoadLeads(app)
	if err != nil {
		t.Fatalf("LoadLeads() error: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("expected 1 lead, got %d", len(leads))
	}
	got := leads[0]
	if got.Company != "Unicorp" || got.Status != services.LeadProposalSent || got.Score != 85 {
		t.Errorf("unexpected lead: %+v", got)
	}
	if got.ProjectValue != 2_400_000 {
		t.Errorf("ProjectValue = %v, want 2400000", got.ProjectValue)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "retail" || got.Tags[1] != "lake-nona" {
		t.Errorf("Tags = %v", got.Tags)
	}
}

func TestSaveLead_DefaultsStatusAndClampsScore(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	saved, err := collections.SaveLead(app, services.CRMLead{
		Company:     "Baldwin Homes",
		ProjectName: "Townhomes",
		Score:       140,
	})
	if err != nil {
		t.Fatalf("SaveLead() error: %v", err)
	}
	if saved.Status != services.LeadNew {
		t.Errorf("Status = %q, want %q", saved.Status, services.LeadNew)
	}
	if saved.Score != 100 {
		t.Errorf("Score = %d, want 100", saved.Score)
	}
	if saved.Tags == nil {
		t.Error("expected non-nil Tags")
	}
}

func TestSetLeadStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec := testhelpers.CreateTestLead(t, app, "CNL Real Estate", services.LeadNew)
	before := time.Now().Add(-time.Second)

	updated, err := collections.SetLeadStatus(app, rec, services.LeadWon)
	if err != nil {
		t.Fatalf("SetLeadStatus() error: %v", err)
	}
	if updated.Status != services.LeadWon {
		t.Errorf("Status = %q, want won", updated.Status)
	}
	if updated.UpdatedAt.Before(before) {
		t.Errorf("UpdatedAt = %v, want a fresh stamp", updated.UpdatedAt)
	}

	// Any transition is allowed, including back out of a closed stage.
	reloaded, _ := collections.FindLead(app, rec.Id)
	updated, err = collections.SetLeadStatus(app, reloaded, services.LeadContacted)
	if err != nil {
		t.Fatalf("SetLeadStatus() error: %v", err)
	}
	if updated.Status != services.LeadContacted {
		t.Errorf("Status = %q, want contacted", updated.Status)
	}
}

func TestSaveInvoice_RoundTrip(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	saved, err := collections.SaveInvoice(app, services.Invoice{
		InvoiceNumber:    "INV-100",
		ProjectName:      "Cafeteria Reroof",
		ClientCompany:    "OCPS",
		ContractorName:   "CF Builders",
		RetainagePercent: 10,
		TaxPercent:       5,
		PreviousPayments: 50,
		Status:           services.InvoiceSent,
		DueDate:          "2026-03-01",
		LineItems: []services.LineItem{
			{Description: "Labor", Quantity: 10, Unit: "HR", UnitPrice: 80},
			{Description: "Materials", Quantity: 1, Unit: "LS", UnitPrice: 200},
		},
	})
	if err != nil {
		t.Fatalf("SaveInvoice() error: %v", err)
	}
	if saved.TotalDue != 895 {
		t.Errorf("TotalDue = %v, want 895", saved.TotalDue)
	}

	got, err := collections.FindInvoice(app, saved.ID)
	if err != nil {
		t.Fatalf("FindInvoice() error: %v", err)
	}
	if len(got.LineItems) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(got.LineItems))
	}
	if got.LineItems[0].Description != "Labor" || got.LineItems[1].Description != "Materials" {
		t.Errorf("line items out of order: %+v", got.LineItems)
	}
	if got.LineItems[0].Amount != 800 {
		t.Errorf("line 1 amount = %v, want 800", got.LineItems[0].Amount)
	}
	if got.Subtotal != 1000 || got.RetainageAmount != 100 || got.TaxAmount != 45 || got.TotalDue != 895 {
		t.Errorf("totals = %v/%v/%v/%v", got.Subtotal, got.RetainageAmount, got.TaxAmount, got.TotalDue)
	}
}

func TestSaveInvoice_RollsBackOnBadLineItem(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	_, err := collections.SaveInvoice(app, services.Invoice{
		InvoiceNumber: "INV-200",
		ProjectName:   "Office TI",
		Status:        services.InvoiceDraft,
		LineItems: []services.LineItem{
			{Description: "Framing", Quantity: 1, UnitPrice: 100},
			{Description: "", Quantity: 1, UnitPrice: 50},
		},
	})
	if err == nil {
		t.Fatal("expected error for line item without description")
	}

	count, _ := app.CountRecords(collections.Invoices)
	if count != 0 {
		t.Errorf("expected invoice insert to be rolled back, found %d", count)
	}
}

func TestLoadInvoices_GroupsLineItems(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestInvoice(t, app, "INV-2", services.InvoiceDraft, 3)
	testhelpers.CreateTestInvoice(t, app, "INV-1", services.InvoicePaid, 1)

	invoices, err := collections.LoadInvoices(app)
	if err != nil {
		t.Fatalf("LoadInvoices() error: %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(invoices))
	}
	if invoices[0].InvoiceNumber != "INV-1" || len(invoices[0].LineItems) != 1 {
		t.Errorf("invoice 0 = %s with %d items", invoices[0].InvoiceNumber, len(invoices[0].LineItems))
	}
	if invoices[1].InvoiceNumber != "INV-2" || len(invoices[1].LineItems) != 3 {
		t.Errorf("invoice 1 = %s with %d items", invoices[1].InvoiceNumber, len(invoices[1].LineItems))
	}
}

func TestLoadInvoices_Empty(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	invoices, err := collections.LoadInvoices(app)
	if err != nil {
		t.Fatalf("LoadInvoices() error: %v", err)
	}
	if invoices == nil || len(invoices) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", invoices)
	}
}

func TestSaveDocument_AndLoad(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	saved, err := collections.SaveDocument(app, collections.GeneratedDocument{
		TemplateID:   "commercial-bid-proposal",
		TemplateName: "Commercial Bid Proposal",
		Title:        "Bid for Unicorp",
		Body:         "## Scope\n\nSitework",
		Values:       services.Values{"CLIENT_NAME": "Unicorp"},
	})
	if err != nil {
		t.Fatalf("SaveDocument() error: %v", err)
	}
	if saved.Missing == nil {
		t.Error("expected non-nil Missing")
	}

	if _, err := collections.SaveDocument(app, collections.GeneratedDocument{
		TemplateID: "other", Title: "Other",
	}); err != nil {
		t.Fatalf("SaveDocument() error: %v", err)
	}

	docs, err := collections.LoadDocuments(app, "commercial-bid-proposal")
	if err != nil {
		t.Fatalf("LoadDocuments() error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document for template, got %d", len(docs))
	}
	if docs[0].Values["CLIENT_NAME"] != "Unicorp" {
		t.Errorf("Values = %v", docs[0].Values)
	}

	all, _ := collections.LoadDocuments(app, "")
	if len(all) != 2 {
		t.Errorf("expected 2 documents, got %d", len(all))
	}

	found, err := collections.FindDocument(app, saved.ID)
	if err != nil {
		t.Fatalf("FindDocument() error: %v", err)
	}
	if found.Body != "## Scope\n\nSitework" {
		t.Errorf("Body = %q", found.Body)
	}
}

func TestSaveInvoice_AssignsNextNumber(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	year := time.Now().Year()
	testhelpers.CreateTestInvoice(t, app, fmt.Sprintf("INV-%d-0004", year), services.InvoiceDraft, 0)
	testhelpers.CreateTestInvoice(t, app, "INV-1999-0100", services.InvoicePaid, 0)

	saved, err := collections.SaveInvoice(app, services.Invoice{
		ProjectName: "Office TI",
		Status:      services.InvoiceDraft,
	})
	if err != nil {
		t.Fatalf("SaveInvoice() error: %v", err)
	}
	if want := fmt.Sprintf("INV-%d-0005", year); saved.InvoiceNumber != want {
		t.Errorf("InvoiceNumber = %q, want %q", saved.InvoiceNumber, want)
	}
}
