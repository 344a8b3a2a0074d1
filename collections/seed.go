package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"commandcenter/services"
)

type leadDef struct {
	company      string
	contact      string
	title        string
	email        string
	phone        string
	project      string
	projectType  string
	value        float64
	address      string
	status       services.LeadStatus
	score        int
	source       string
	assignedTo   string
	followUpDate string
	tags         []string
	notes        string
}

type lineDef struct {
	description string
	division    string
	qty         float64
	unit        string
	unitPrice   float64
}

type invoiceDef struct {
	number        string
	project       string
	clientCompany string
	clientName    string
	clientEmail   string
	complete      float64 // percent complete, drives the retainage rate
	tax           float64
	previous      float64
	status        services.InvoiceStatus
	invoiceDate   string
	dueDate       string
	terms         string
	notes         string
	lines         []lineDef
}

const (
	seedContractor        = "Central Florida Builders LLC"
	seedContractorEmail   = "billing@cfbuilders.com"
	seedContractorLicense = "CGC1523456"
)

var seedLeads = []leadDef{
	{
		company: "Unicorp National Developments", contact: "Chuck Whittall", title: "President",
		email: "cwhittall@unicorpusa.com", phone: "(407) 555-0142",
		project: "Lake Nona Town Center Retail", projectType: "Commercial Retail", value: 2_400_000,
		address: "6900 Tavistock Lakes Blvd, Orlando, FL 32827",
		status: services.LeadProposalSent, score: 85, source: "Referral", assignedTo: "Maria Lopez",
		followUpDate: "2026-03-12", tags: []string{"retail", "lake-nona"},
		notes: "Wants GMP by end of quarter.",
	},
	{
		company: "Tavistock Development Company", contact: "Rasesh Thakkar", title: "Senior Managing Director",
		email: "rthakkar@tavistock.com", phone: "(407) 555-0178",
		project: "Medical Office Building Phase II", projectType: "Healthcare", value: 5_750_000,
		address: "9801 Lake Nona Rd, Orlando, FL 32827",
		status: services.LeadNegotiating, score: 92, source: "Bid Board", assignedTo: "Maria Lopez",
		followUpDate: "2026-03-05", tags: []string{"healthcare", "design-build"},
	},
	{
		company: "CNL Real Estate", contact: "Dana Whitfield", title: "VP Construction",
		email: "dwhitfield@cnl.com", phone: "(407) 555-0110",
		project: "Winter Park Office Renovation", projectType: "Tenant Improvement", value: 680_000,
		address: "450 S Orange Ave, Orlando, FL 32801",
		status: services.LeadContacted, score: 64, source: "Website", assignedTo: "James Carter",
		followUpDate: "2026-03-20", tags: []string{"ti", "occupied-building"},
	},
	{
		company: "Baldwin Park Homes", contact: "Ellen Ruiz", title: "Owner",
		email: "eruiz@baldwinhomes.com", phone: "(407) 555-0199",
		project: "Baldwin Park Townhomes", projectType: "Multifamily", value: 3_100_000,
		address: "4801 New Broad St, Orlando, FL 32814",
		status: services.LeadNew, score: 48, source: "Trade Show", assignedTo: "James Carter",
		tags: []string{"residential"},
	},
	{
		company: "Orange County Public Schools", contact: "Marcus Bell", title: "Facilities Planner",
		email: "marcus.bell@ocps.net", phone: "(407) 555-0133",
		project: "Cafeteria Reroof", projectType: "Institutional", value: 420_000,
		address: "445 W Amelia St, Orlando, FL 32801",
		status: services.LeadWon, score: 88, source: "Public Bid", assignedTo: "Maria Lopez",
		tags: []string{"public", "roofing"},
		notes: "Awarded. NTP expected in April.",
	},
	{
		company: "Dr. Phillips Hospitality", contact: "Nina Patel", title: "Development Manager",
		email: "npatel@drphillipshosp.com", phone: "(407) 555-0165",
		project: "Sand Lake Hotel Lobby Refresh", projectType: "Hospitality", value: 350_000,
		address: "7900 Sand Lake Rd, Orlando, FL 32819",
		status: services.LeadLost, score: 30, source: "Cold Call", assignedTo: "James Carter",
		tags: []string{"hospitality"},
		notes: "Lost on price to a national GC.",
	},
}

var seedInvoices = []invoiceDef{
	{
		number: "INV-2026-0001", project: "Cafeteria Reroof",
		clientCompany: "Orange County Public Schools", clientName: "Marcus Bell", clientEmail: "marcus.bell@ocps.net",
		complete: 25, tax: 0, status: services.InvoicePaid,
		invoiceDate: "2026-01-05", dueDate: "2026-02-04", terms: "Net 30",
		lines: []lineDef{
			{"Mobilization and submittals", "01 00 00", 1, "LS", 12_500},
			{"Tear-off existing roofing", "07 01 50", 8_200, "SF", 2.75},
		},
	},
	{
		number: "INV-2026-0002", project: "Cafeteria Reroof",
		clientCompany: "Orange County Public Schools", clientName: "Marcus Bell", clientEmail: "marcus.bell@ocps.net",
		complete: 45, tax: 0, previous: 31_545, status: services.InvoiceSent,
		invoiceDate: "2026-02-05", dueDate: "2026-03-07", terms: "Net 30",
		lines: []lineDef{
			{"TPO membrane roofing", "07 54 23", 8_200, "SF", 6.40},
			{"Sheet metal flashing", "07 62 00", 640, "LF", 18.50},
		},
	},
	{
		number: "INV-2026-0003", project: "Winter Park Office Renovation",
		clientCompany: "CNL Real Estate", clientName: "Dana Whitfield", clientEmail: "dwhitfield@cnl.com",
		complete: 80, tax: 6.5, status: services.InvoiceOverdue,
		invoiceDate: "2025-12-01", dueDate: "2025-12-31", terms: "Net 30",
		notes: "Second notice sent 2026-01-15.",
		lines: []lineDef{
			{"Interior demolition", "02 41 19", 1, "LS", 18_000},
			{"Metal stud framing and drywall", "09 21 16", 4_800, "SF", 7.25},
			{"Acoustical ceilings", "09 51 13", 4_200, "SF", 4.10},
		},
	},
	{
		number: "INV-2026-0004", project: "Lake Nona Town Center Retail",
		clientCompany: "Unicorp National Developments", clientName: "Chuck Whittall", clientEmail: "cwhittall@unicorpusa.com",
		complete: 0, tax: 0, status: services.InvoiceDraft,
		invoiceDate: "2026-03-01", dueDate: "2026-03-31", terms: "Net 30",
		lines: []lineDef{
			{"Preconstruction services", "01 30 00", 1, "LS", 24_000},
		},
	},
}

// Seed inserts sample leads and invoices into an empty database in one
// transaction. It is a no-op once any lead exists.
func Seed(app *pocketbase.PocketBase) error {
	existing, err := app.CountRecords(Leads)
	if err != nil {
		return fmt.Errorf("count %s: %w", Leads, err)
	}
	if existing > 0 {
		log.Printf("Seed: %d leads already present, skipping.", existing)
		return nil
	}

	err = app.RunInTransaction(func(txApp core.App) error {
		for _, d := range seedLeads {
			lead := services.CRMLead{
				Company:        d.company,
				ContactName:    d.contact,
				Title:          d.title,
				Email:          d.email,
				Phone:          d.phone,
				ProjectName:    d.project,
				ProjectType:    d.projectType,
				ProjectValue:   d.value,
				ProjectAddress: d.address,
				Status:         d.status,
				Score:          d.score,
				Source:         d.source,
				AssignedTo:     d.assignedTo,
				FollowUpDate:   d.followUpDate,
				Tags:           d.tags,
				Notes:          d.notes,
			}
			if _, err := SaveLead(txApp, lead); err != nil {
				return fmt.Errorf("seed lead: %w", err)
			}
		}

		for _, d := range seedInvoices {
			inv := services.Invoice{
				InvoiceNumber:     d.number,
				ProjectName:       d.project,
				ClientCompany:     d.clientCompany,
				ClientName:        d.clientName,
				ClientEmail:       d.clientEmail,
				ContractorName:    seedContractor,
				ContractorEmail:   seedContractorEmail,
				ContractorLicense: seedContractorLicense,
				RetainagePercent:  services.StandardRetainagePercent(d.complete),
				TaxPercent:        d.tax,
				PreviousPayments:  d.previous,
				Status:            d.status,
				InvoiceDate:       d.invoiceDate,
				DueDate:           d.dueDate,
				PaymentTerms:      d.terms,
				Notes:             d.notes,
			}
			for _, l := range d.lines {
				inv.LineItems = append(inv.LineItems, services.LineItem{
					Description: l.description,
					Division:    l.division,
					Quantity:    l.qty,
					Unit:        l.unit,
					UnitPrice:   l.unitPrice,
				})
			}
			if _, err := SaveInvoice(txApp, inv); err != nil {
				return fmt.Errorf("seed invoice: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Seed: created %d leads and %d invoices.", len(seedLeads), len(seedInvoices))
	return nil
}
