package services

import (
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestParseCSV_Valid(t *testing.T) {
	input := "Company,Project Name\nAcme,Warehouse\nBeta,Clinic\n"
	headers, rows, err := parseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseCSV() error = %v", err)
	}
	if len(headers) != 2 {
		t.Errorf("expected 2 headers, got %d", len(headers))
	}
	if len(rows) != 2 {
		t.Errorf("expected 2 data rows, got %d", len(rows))
	}
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	_, _, err := parseCSV(strings.NewReader("Company,Project Name\n"))
	if err == nil {
		t.Fatal("expected error for header-only file")
	}
	if !strings.Contains(err.Error(), "at least one data row") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseCSV_Empty(t *testing.T) {
	if _, _, err := parseCSV(strings.NewReader("")); err == nil {
		t.Error("expected error for empty file")
	}
}

func TestMapHeaders(t *testing.T) {
	t.Run("case insensitive", func(t *testing.T) {
		mapped, unrecognized := mapHeaders([]string{"company", "PROJECT NAME", "Score"})
		if len(unrecognized) != 0 {
			t.Errorf("expected no unrecognized, got %v", unrecognized)
		}
		if mapped[0] != "Company" || mapped[1] != "Project Name" || mapped[2] != "Score" {
			t.Errorf("unexpected mapping: %v", mapped)
		}
	})

	t.Run("with required asterisk", func(t *testing.T) {
		mapped, _ := mapHeaders([]string{"Company *", "Project Name*"})
		if mapped[0] != "Company" || mapped[1] != "Project Name" {
			t.Errorf("unexpected mapping: %v", mapped)
		}
	})

	t.Run("unrecognized column", func(t *testing.T) {
		mapped, unrecognized := mapHeaders([]string{"Company", "Favorite Color", ""})
		if mapped[1] != "" {
			t.Errorf("expected empty mapping, got %q", mapped[1])
		}
		if len(unrecognized) != 1 || unrecognized[0] != "Favorite Color" {
			t.Errorf("unrecognized = %v", unrecognized)
		}
	})
}

func TestValidateLeadFile_CSV(t *testing.T) {
	input := strings.Join([]string{
		"Company,Project Name,Project Value,Status,Score,Email,Follow-Up Date,Tags",
		`"Acme, Inc.",Warehouse,"$1,250,000",Proposal Sent,85,jo@acme.com,2026-04-01,industrial; repeat`,
		`Beta,,abc,closed,101,not-an-email,04/01/2026,`,
		`,,,,,,,`,
		`Gamma,Clinic,0,won,0,,,`,
	}, "\n") + "\n"

	result, err := ValidateLeadFile(strings.NewReader(input), "leads.CSV")
	if err != nil {
		t.Fatalf("ValidateLeadFile() error = %v", err)
	}
	if result.TotalRows != 3 || result.ValidRows != 2 || result.ErrorRows != 1 {
		t.Errorf("rows total/valid/error = %d/%d/%d, want 3/2/1", result.TotalRows, result.ValidRows, result.ErrorRows)
	}

	fields := make(map[string]bool)
	for _, e := range result.Errors {
		if e.Row != 3 {
			t.Errorf("error on row %d, want 3: %+v", e.Row, e)
		}
		fields[e.Field] = true
	}
	for _, f := range []string{"Project Name", "Project Value", "Status", "Score", "Email", "Follow-Up Date"} {
		if !fields[f] {
			t.Errorf("expected an error for %s, got %+v", f, result.Errors)
		}
	}

	if len(result.Leads) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(result.Leads))
	}
	acme := result.Leads[0]
	if acme.Company != "Acme, Inc." || acme.ProjectValue != 1250000 || acme.Status != LeadProposalSent || acme.Score != 85 {
		t.Errorf("unexpected lead: %+v", acme)
	}
	if len(acme.Tags) != 2 || acme.Tags[1] != "repeat" {
		t.Errorf("tags = %v", acme.Tags)
	}
	if acme.ID == "" || acme.ID == result.Leads[1].ID {
		t.Errorf("expected distinct provisional ids, got %q and %q", acme.ID, result.Leads[1].ID)
	}
	if result.Leads[1].Status != LeadWon {
		t.Errorf("status = %q, want won", result.Leads[1].Status)
	}
}

func TestValidateLeadFile_DefaultsStatusToNew(t *testing.T) {
	result, err := ValidateLeadFile(strings.NewReader("Company,Project Name\nAcme,Warehouse\n"), "leads.csv")
	if err != nil {
		t.Fatal(err)
	}
	if result.Leads[0].Status != LeadNew || len(result.Leads[0].Tags) != 0 {
		t.Errorf("unexpected lead: %+v", result.Leads[0])
	}
}

func TestValidateLeadFile_UnsupportedFormat(t *testing.T) {
	_, err := ValidateLeadFile(strings.NewReader("x"), "leads.txt")
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

func TestValidateLeadFile_RoundTripsCSVExport(t *testing.T) {
	leads := crmFixture()
	leads[0].Notes = "Prefers \"design-build\",\nfollow up by phone"
	leads[0].Tags = []string{"mixed-use", "downtown"}

	out, err := LeadsToCSV(leads)
	if err != nil {
		t.Fatal(err)
	}
	result, err := ValidateLeadFile(strings.NewReader(out), "export.csv")
	if err != nil {
		t.Fatalf("ValidateLeadFile() error = %v", err)
	}
	if result.ErrorRows != 0 {
		t.Fatalf("unexpected errors: %+v", result.Errors)
	}
	assertImportedLeads(t, leads, result.Leads)
}

func TestValidateLeadFile_RoundTripsExcelExport(t *testing.T) {
	leads := crmFixture()
	data, err := GenerateLeadsExcel(leads, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	result, err := ValidateLeadFile(bytesReader(data), "export.xlsx")
	if err != nil {
		t.Fatalf("ValidateLeadFile() error = %v", err)
	}
	if result.ErrorRows != 0 {
		t.Fatalf("unexpected errors: %+v", result.Errors)
	}
	assertImportedLeads(t, leads, result.Leads)
}

func assertImportedLeads(t *testing.T, want, got []CRMLead) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("imported %d leads, want %d", len(got), len(want))
	}
	for i := range want {
		w, g := want[i], got[i]
		if g.Company != w.Company || g.ProjectName != w.ProjectName || g.ProjectValue != w.ProjectValue ||
			g.Status != w.Status || g.Score != w.Score || g.FollowUpDate != w.FollowUpDate || g.Notes != w.Notes {
			t.Errorf("lead %d: got %+v, want %+v", i, g, w)
		}
		if len(g.Tags) != len(w.Tags) {
			t.Errorf("lead %d tags = %v, want %v", i, g.Tags, w.Tags)
		}
	}
}

func TestGenerateErrorReport(t *testing.T) {
	errs := []ValidationError{
		{Row: 2, Field: "Company", Message: "Company is required"},
		{Row: 5, Field: "Notes", Message: "=HYPERLINK(\"x\")"},
	}
	data, err := GenerateErrorReport(errs)
	if err != nil {
		t.Fatalf("GenerateErrorReport() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(data))
	if err != nil {
		t.Fatalf("invalid xlsx: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue("Errors", "A1"); got != "Row #" {
		t.Errorf("A1 = %q", got)
	}
	if got, _ := f.GetCellValue("Errors", "B2"); got != "Company" {
		t.Errorf("B2 = %q", got)
	}
	if got, _ := f.GetCellValue("Errors", "C3"); !strings.HasPrefix(got, "'=") {
		t.Errorf("formula not neutralized: %q", got)
	}
}
