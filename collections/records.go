package collections

import (
	"fmt"
	"sort"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"commandcenter/services"
)

// LeadFromRecord maps a crm_leads record to a lead.
func LeadFromRecord(r *core.Record) services.CRMLead {
	tags := []string{}
	if err := r.UnmarshalJSONField("tags", &tags); err != nil || tags == nil {
		tags = []string{}
	}
	return services.CRMLead{
		ID:             r.Id,
		Company:        r.GetString("company"),
		ContactName:    r.GetString("contact_name"),
		Title:          r.GetString("title"),
		Email:          r.GetString("email"),
		Phone:          r.GetString("phone"),
		ProjectName:    r.GetString("project_name"),
		ProjectType:    r.GetString("project_type"),
		ProjectValue:   r.GetFloat("project_value"),
		ProjectAddress: r.GetString("project_address"),
		Status:         services.LeadStatus(r.GetString("status")),
		Score:          r.GetInt("score"),
		Source:         r.GetString("source"),
		AssignedTo:     r.GetString("assigned_to"),
		FollowUpDate:   r.GetString("follow_up_date"),
		Tags:           tags,
		Notes:          r.GetString("notes"),
		CreatedAt:      r.GetDateTime("created").Time(),
		UpdatedAt:      r.GetDateTime("updated").Time(),
	}
}

// applyLead copies the editable lead fields onto r.
func applyLead(r *core.Record, lead services.CRMLead) {
	tags := lead.Tags
	if tags == nil {
		tags = []string{}
	}
	r.Set("company", lead.Company)
	r.Set("contact_name", lead.ContactName)
	r.Set("title", lead.Title)
	r.Set("email", lead.Email)
	r.Set("phone", lead.Phone)
	r.Set("project_name", lead.ProjectName)
	r.Set("project_type", lead.ProjectType)
	r.Set("project_value", lead.ProjectValue)
	r.Set("project_address", lead.ProjectAddress)
	r.Set("status", string(lead.Status))
	r.Set("score", services.ClampScore(lead.Score))
	r.Set("source", lead.Source)
	r.Set("assigned_to", lead.AssignedTo)
	r.Set("follow_up_date", lead.FollowUpDate)
	r.Set("tags", tags)
	r.Set("notes", lead.Notes)
}

// SaveLead inserts lead as a new record. The lead's own ID is not kept; the
// returned lead carries the stored id and timestamps.
func SaveLead(app core.App, lead services.CRMLead) (services.CRMLead, error) {
	col, err := app.FindCollectionByNameOrId(Leads)
	if err != nil {
		return services.CRMLead{}, fmt.Errorf("find %s: %w", Leads, err)
	}
	if !lead.Status.Valid() {
		lead.Status = services.LeadNew
	}
	record := core.NewRecord(col)
	applyLead(record, lead)
	if err := app.Save(record); err != nil {
		return services.CRMLead{}, fmt.Errorf("save lead %q: %w", lead.Company, err)
	}
	return LeadFromRecord(record), nil
}

// LoadLeads returns every lead, oldest first.
func LoadLeads(app core.App) ([]services.CRMLead, error) {
	var records []*core.Record
	err := app.RecordQuery(Leads).
		OrderBy("created ASC", "id ASC").
		All(&records)
	if err != nil {
		return nil, fmt.Errorf("load leads: %w", err)
	}
	leads := make([]services.CRMLead, len(records))
	for i, r := range records {
		leads[i] = LeadFromRecord(r)
	}
	return leads, nil
}

// FindLead loads one lead record by id.
func FindLead(app core.App, id string) (*core.Record, error) {
	return app.FindRecordById(Leads, id)
}

// SetLeadStatus moves a stored lead to status and returns the updated lead.
// Any transition is allowed.
func SetLeadStatus(app core.App, record *core.Record, status services.LeadStatus) (services.CRMLead, error) {
	lead := services.UpdateLeadStatus(LeadFromRecord(record), status, time.Now())
	record.Set("status", string(lead.Status))
	if err := app.Save(record); err != nil {
		return services.CRMLead{}, fmt.Errorf("update lead %s status: %w", record.Id, err)
	}
	return LeadFromRecord(record), nil
}

// InvoiceFromRecord maps an invoices record and its line item records to an
// invoice with totals computed.
func InvoiceFromRecord(r *core.Record, items []*core.Record) services.Invoice {
	lineItems := make([]services.LineItem, len(items))
	for i, it := range items {
		lineItems[i] = services.LineItem{
			ID:          it.Id,
			Description: it.GetString("description"),
			Division:    it.GetString("division"),
			Quantity:    it.GetFloat("quantity"),
			Unit:        it.GetString("unit"),
			UnitPrice:   it.GetFloat("unit_price"),
		}
	}
	return services.CalculateInvoice(services.Invoice{
		ID:                r.Id,
		InvoiceNumber:     r.GetString("invoice_number"),
		ProjectName:       r.GetString("project_name"),
		ClientCompany:     r.GetString("client_company"),
		ClientName:        r.GetString("client_name"),
		ClientEmail:       r.GetString("client_email"),
		ContractorName:    r.GetString("contractor_name"),
		ContractorEmail:   r.GetString("contractor_email"),
		ContractorLicense: r.GetString("contractor_license"),
		LineItems:         lineItems,
		RetainagePercent:  r.GetFloat("retainage_percent"),
		TaxPercent:        r.GetFloat("tax_percent"),
		PreviousPayments:  r.GetFloat("previous_payments"),
		Status:            services.InvoiceStatus(r.GetString("status")),
		InvoiceDate:       r.GetString("invoice_date"),
		DueDate:           r.GetString("due_date"),
		PaymentTerms:      r.GetString("payment_terms"),
		Notes:             r.GetString("notes"),
	})
}

// NextInvoiceNumber returns the next unused invoice number for now's year.
func NextInvoiceNumber(app core.App, now time.Time) (string, error) {
	records, err := app.FindRecordsByFilter(
		Invoices,
		"invoice_number ~ {:prefix}",
		"",
		0,
		0,
		dbx.Params{"prefix": fmt.Sprintf("INV-%d-%%", now.Year())},
	)
	if err != nil {
		return "", fmt.Errorf("load invoice numbers: %w", err)
	}
	numbers := make([]string, len(records))
	for i, r := range records {
		numbers[i] = r.GetString("invoice_number")
	}
	return services.NextInvoiceNumber(numbers, now), nil
}

// SaveInvoice inserts an invoice and its line items in one transaction. An
// invoice without a number gets the next one for the current year.
func SaveInvoice(app core.App, inv services.Invoice) (services.Invoice, error) {
	var saved services.Invoice
	err := app.RunInTransaction(func(txApp core.App) error {
		if inv.InvoiceNumber == "" {
			number, err := NextInvoiceNumber(txApp, time.Now())
			if err != nil {
				return err
			}
			inv.InvoiceNumber = number
		}
		invCol, err := txApp.FindCollectionByNameOrId(Invoices)
		if err != nil {
			return fmt.Errorf("find %s: %w", Invoices, err)
		}
		itemCol, err := txApp.FindCollectionByNameOrId(InvoiceLineItems)
		if err != nil {
			return fmt.Errorf("find %s: %w", InvoiceLineItems, err)
		}

		record := core.NewRecord(invCol)
		record.Set("invoice_number", inv.InvoiceNumber)
		record.Set("project_name", inv.ProjectName)
		record.Set("client_company", inv.ClientCompany)
		record.Set("client_name", inv.ClientName)
		record.Set("client_email", inv.ClientEmail)
		record.Set("contractor_name", inv.ContractorName)
		record.Set("contractor_email", inv.ContractorEmail)
		record.Set("contractor_license", inv.ContractorLicense)
		record.Set("retainage_percent", inv.RetainagePercent)
		record.Set("tax_percent", inv.TaxPercent)
		record.Set("previous_payments", inv.PreviousPayments)
		record.Set("status", string(inv.Status))
		record.Set("invoice_date", inv.InvoiceDate)
		record.Set("due_date", inv.DueDate)
		record.Set("payment_terms", inv.PaymentTerms)
		record.Set("notes", inv.Notes)
		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("save invoice %s: %w", inv.InvoiceNumber, err)
		}

		items := make([]*core.Record, 0, len(inv.LineItems))
		for i, li := range inv.LineItems {
			item := core.NewRecord(itemCol)
			item.Set("invoice", record.Id)
			item.Set("sort_order", i+1)
			item.Set("description", li.Description)
			item.Set("division", li.Division)
			item.Set("quantity", li.Quantity)
			item.Set("unit", li.Unit)
			item.Set("unit_price", li.UnitPrice)
			if err := txApp.Save(item); err != nil {
				return fmt.Errorf("save line item %d of %s: %w", i+1, inv.InvoiceNumber, err)
			}
			items = append(items, item)
		}
		saved = InvoiceFromRecord(record, items)
		return nil
	})
	return saved, err
}

// LoadInvoices returns every invoice with its line items, ordered by
// invoice number.
func LoadInvoices(app core.App) ([]services.Invoice, error) {
	var records []*core.Record
	if err := app.RecordQuery(Invoices).OrderBy("invoice_number ASC").All(&records); err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}
	if len(records) == 0 {
		return []services.Invoice{}, nil
	}

	ids := make([]any, len(records))
	for i, r := range records {
		ids[i] = r.Id
	}
	byInvoice, err := loadLineItems(app, dbx.In("invoice", ids...))
	if err != nil {
		return nil, err
	}

	invoices := make([]services.Invoice, len(records))
	for i, r := range records {
		invoices[i] = InvoiceFromRecord(r, byInvoice[r.Id])
	}
	return invoices, nil
}

// FindInvoice loads one invoice with its line items.
func FindInvoice(app core.App, id string) (services.Invoice, error) {
	record, err := app.FindRecordById(Invoices, id)
	if err != nil {
		return services.Invoice{}, err
	}
	byInvoice, err := loadLineItems(app, dbx.HashExp{"invoice": record.Id})
	if err != nil {
		return services.Invoice{}, err
	}
	return InvoiceFromRecord(record, byInvoice[record.Id]), nil
}

func loadLineItems(app core.App, where dbx.Expression) (map[string][]*core.Record, error) {
	var items []*core.Record
	err := app.RecordQuery(InvoiceLineItems).
		AndWhere(where).
		OrderBy("sort_order ASC").
		All(&items)
	if err != nil {
		return nil, fmt.Errorf("load line items: %w", err)
	}
	byInvoice := make(map[string][]*core.Record)
	for _, it := range items {
		id := it.GetString("invoice")
		byInvoice[id] = append(byInvoice[id], it)
	}
	for _, list := range byInvoice {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].GetInt("sort_order") < list[j].GetInt("sort_order")
		})
	}
	return byInvoice, nil
}

// GeneratedDocument is a rendered template stored for later download.
type GeneratedDocument struct {
	ID           string          `json:"id"`
	TemplateID   string          `json:"templateId"`
	TemplateName string          `json:"templateName"`
	Title        string          `json:"title"`
	Body         string          `json:"body"`
	Values       services.Values `json:"values"`
	Missing      []string        `json:"missing"`
	Created      string          `json:"created"`
}

func documentFromRecord(r *core.Record) GeneratedDocument {
	values := services.Values{}
	_ = r.UnmarshalJSONField("values", &values)
	missing := []string{}
	_ = r.UnmarshalJSONField("missing", &missing)
	return GeneratedDocument{
		ID:           r.Id,
		TemplateID:   r.GetString("template_id"),
		TemplateName: r.GetString("template_name"),
		Title:        r.GetString("title"),
		Body:         r.GetString("body"),
		Values:       values,
		Missing:      missing,
		Created:      r.GetDateTime("created").String(),
	}
}

// SaveDocument stores a rendered template.
func SaveDocument(app core.App, doc GeneratedDocument) (GeneratedDocument, error) {
	col, err := app.FindCollectionByNameOrId(GeneratedDocuments)
	if err != nil {
		return GeneratedDocument{}, fmt.Errorf("find %s: %w", GeneratedDocuments, err)
	}
	if doc.Missing == nil {
		doc.Missing = []string{}
	}
	record := core.NewRecord(col)
	record.Set("template_id", doc.TemplateID)
	record.Set("template_name", doc.TemplateName)
	record.Set("title", doc.Title)
	record.Set("body", doc.Body)
	record.Set("values", doc.Values)
	record.Set("missing", doc.Missing)
	if err := app.Save(record); err != nil {
		return GeneratedDocument{}, fmt.Errorf("save document: %w", err)
	}
	return documentFromRecord(record), nil
}

// LoadDocuments returns stored documents newest first, optionally limited to
// one template.
func LoadDocuments(app core.App, templateID string) ([]GeneratedDocument, error) {
	q := app.RecordQuery(GeneratedDocuments)
	if templateID != "" {
		q = q.AndWhere(dbx.HashExp{"template_id": templateID})
	}
	var records []*core.Record
	if err := q.OrderBy("created DESC", "id DESC").All(&records); err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	docs := make([]GeneratedDocument, len(records))
	for i, r := range records {
		docs[i] = documentFromRecord(r)
	}
	return docs, nil
}

// FindDocument loads one stored document.
func FindDocument(app core.App, id string) (GeneratedDocument, error) {
	r, err := app.FindRecordById(GeneratedDocuments, id)
	if err != nil {
		return GeneratedDocument{}, err
	}
	return documentFromRecord(r), nil
}
