package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"commandcenter/services"
)

// Collection names.
const (
	Leads              = "crm_leads"
	Invoices           = "invoices"
	InvoiceLineItems   = "invoice_line_items"
	GeneratedDocuments = "generated_documents"
)

// Setup programmatically creates/ensures the crm_leads, invoices,
// invoice_line_items and generated_documents collections exist.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, Leads, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "company", Required: true})
		c.Fields.Add(&core.TextField{Name: "contact_name"})
		c.Fields.Add(&core.TextField{Name: "title"})
		c.Fields.Add(&core.EmailField{Name: "email"})
		c.Fields.Add(&core.TextField{Name: "phone"})
		c.Fields.Add(&core.TextField{Name: "project_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "project_type"})
		c.Fields.Add(&core.NumberField{Name: "project_value", Min: types.Pointer(0.0)})
		c.Fields.Add(&core.TextField{Name: "project_address"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    leadStatusValues(),
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "score", Min: types.Pointer(0.0), Max: types.Pointer(100.0), OnlyInt: true})
		c.Fields.Add(&core.TextField{Name: "source"})
		c.Fields.Add(&core.TextField{Name: "assigned_to"})
		c.Fields.Add(&core.TextField{Name: "follow_up_date"})
		c.Fields.Add(&core.JSONField{Name: "tags"})
		c.Fields.Add(&core.TextField{Name: "notes", Max: 10000})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	invoices := ensureCollection(app, Invoices, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "invoice_number", Required: true})
		c.Fields.Add(&core.TextField{Name: "project_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "client_company"})
		c.Fields.Add(&core.TextField{Name: "client_name"})
		c.Fields.Add(&core.EmailField{Name: "client_email"})
		c.Fields.Add(&core.TextField{Name: "contractor_name"})
		c.Fields.Add(&core.EmailField{Name: "contractor_email"})
		c.Fields.Add(&core.TextField{Name: "contractor_license"})
		c.Fields.Add(&core.NumberField{Name: "retainage_percent", Min: types.Pointer(0.0), Max: types.Pointer(100.0)})
		c.Fields.Add(&core.NumberField{Name: "tax_percent", Min: types.Pointer(0.0), Max: types.Pointer(100.0)})
		c.Fields.Add(&core.NumberField{Name: "previous_payments", Min: types.Pointer(0.0)})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    invoiceStatusValues(),
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "invoice_date"})
		c.Fields.Add(&core.TextField{Name: "due_date"})
		c.Fields.Add(&core.TextField{Name: "payment_terms"})
		c.Fields.Add(&core.TextField{Name: "notes", Max: 10000})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_invoices_number", true, "invoice_number", "")
	})

	ensureCollection(app, InvoiceLineItems, func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "invoice",
			Required:      true,
			CollectionId:  invoices.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "division"})
		c.Fields.Add(&core.NumberField{Name: "quantity"})
		c.Fields.Add(&core.TextField{Name: "unit"})
		c.Fields.Add(&core.NumberField{Name: "unit_price"})
	})

	ensureCollection(app, GeneratedDocuments, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "template_id", Required: true})
		c.Fields.Add(&core.TextField{Name: "template_name"})
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.TextField{Name: "body", Max: 200000})
		c.Fields.Add(&core.JSONField{Name: "values"})
		c.Fields.Add(&core.JSONField{Name: "missing"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})
}

func leadStatusValues() []string {
	out := make([]string, len(services.LeadStatuses))
	for i, s := range services.LeadStatuses {
		out[i] = string(s)
	}
	return out
}

func invoiceStatusValues() []string {
	out := make([]string, len(services.InvoiceStatuses))
	for i, s := range services.InvoiceStatuses {
		out[i] = string(s)
	}
	return out
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
