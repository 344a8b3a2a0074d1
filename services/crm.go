package services

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// LeadStatus is the pipeline stage of a lead. Any stage may follow any other.
type LeadStatus string

const (
	LeadNew          LeadStatus = "new"
	LeadContacted    LeadStatus = "contacted"
	LeadProposalSent LeadStatus = "proposal-sent"
	LeadNegotiating  LeadStatus = "negotiating"
	LeadWon          LeadStatus = "won"
	LeadLost         LeadStatus = "lost"
)

// LeadStatuses lists the stages in pipeline order.
var LeadStatuses = []LeadStatus{LeadNew, LeadContacted, LeadProposalSent, LeadNegotiating, LeadWon, LeadLost}

var leadStatusLabels = map[LeadStatus]string{
	LeadNew:          "New",
	LeadContacted:    "Contacted",
	LeadProposalSent: "Proposal Sent",
	LeadNegotiating:  "Negotiating",
	LeadWon:          "Won",
	LeadLost:         "Lost",
}

// Valid reports whether s is a known stage.
func (s LeadStatus) Valid() bool {
	_, ok := leadStatusLabels[s]
	return ok
}

// Label returns the display name of the stage, or the raw value if unknown.
func (s LeadStatus) Label() string {
	if l, ok := leadStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Closed reports whether the lead has left the pipeline (won or lost).
func (s LeadStatus) Closed() bool {
	return s == LeadWon || s == LeadLost
}

// ParseLeadStatus accepts a status key ("proposal-sent") or its label
// ("Proposal Sent"), case-insensitively.
func ParseLeadStatus(s string) (LeadStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range LeadStatuses {
		if strings.EqualFold(s, string(st)) || strings.EqualFold(s, st.Label()) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown lead status %q", s)
}

// CRMLead is a prospective construction project in the sales pipeline.
type CRMLead struct {
	ID             string     `json:"id"`
	Company        string     `json:"company"`
	ContactName    string     `json:"contactName"`
	Title          string     `json:"title,omitempty"`
	Email          string     `json:"email,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	ProjectName    string     `json:"projectName"`
	ProjectType    string     `json:"projectType"`
	ProjectValue   float64    `json:"projectValue"`
	ProjectAddress string     `json:"projectAddress,omitempty"`
	Status         LeadStatus `json:"status"`
	Score          int        `json:"score"`
	Source         string     `json:"source,omitempty"`
	AssignedTo     string     `json:"assignedTo,omitempty"`
	FollowUpDate   string     `json:"followUpDate,omitempty"`
	Tags           []string   `json:"tags"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// ClampScore bounds a lead score to [0, 100].
func ClampScore(score int) int {
	return min(max(score, 0), 100)
}

// HotScore is the score at which a lead counts as hot.
const HotScore = 80

// PipelineMetrics are the headline numbers of the lead pipeline.
type PipelineMetrics struct {
	Total       int     `json:"total"`
	ActiveLeads int     `json:"activeLeads"`
	HotLeads    int     `json:"hotLeads"`
	TotalValue  float64 `json:"totalValue"`
}

// GetPipelineMetrics counts leads, open (neither won nor lost) leads and hot
// leads. TotalValue sums project value over every lead that is not lost, so
// won deals stay in the figure.
func GetPipelineMetrics(leads []CRMLead) PipelineMetrics {
	m := PipelineMetrics{Total: len(leads)}
	for _, l := range leads {
		if !l.Status.Closed() {
			m.ActiveLeads++
		}
		if l.Score >= HotScore {
			m.HotLeads++
		}
		if l.Status != LeadLost {
			m.TotalValue += l.ProjectValue
		}
	}
	m.TotalValue = round2(m.TotalValue)
	return m
}

// StatusCounts returns the number of leads in every stage; stages with no
// leads are present with 0.
func StatusCounts(leads []CRMLead) map[LeadStatus]int {
	counts := make(map[LeadStatus]int, len(LeadStatuses))
	for _, st := range LeadStatuses {
		counts[st] = 0
	}
	for _, l := range leads {
		counts[l.Status]++
	}
	return counts
}

// UpdateLeadStatus returns a copy of lead moved to status with UpdatedAt set
// to now. No transition is rejected.
func UpdateLeadStatus(lead CRMLead, status LeadStatus, now time.Time) CRMLead {
	lead.Status = status
	lead.UpdatedAt = now
	return lead
}

// LeadQuery filters the lead table. Zero values match everything.
type LeadQuery struct {
	Status LeadStatus
	Search string
}

// FilterLeads keeps leads in the given status whose company, contact,
// project name or project type contains the search text, case-insensitively.
// Order is preserved.
func FilterLeads(leads []CRMLead, q LeadQuery) []CRMLead {
	fold := cases.Fold()
	search := fold.String(strings.TrimSpace(q.Search))
	out := []CRMLead{}
	for _, l := range leads {
		if q.Status != "" && l.Status != q.Status {
			continue
		}
		if search != "" &&
			!containsFolded(fold, l.Company, search) &&
			!containsFolded(fold, l.ContactName, search) &&
			!containsFolded(fold, l.ProjectName, search) &&
			!containsFolded(fold, l.ProjectType, search) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// LeadSortField names a sortable lead column.
type LeadSortField string

const (
	SortByValue    LeadSortField = "projectValue"
	SortByScore    LeadSortField = "score"
	SortByFollowUp LeadSortField = "followUpDate"
	SortByCompany  LeadSortField = "company"
	SortByUpdated  LeadSortField = "updatedAt"
)

// Valid reports whether f is a sortable column.
func (f LeadSortField) Valid() bool {
	switch f {
	case SortByValue, SortByScore, SortByFollowUp, SortByCompany, SortByUpdated:
		return true
	}
	return false
}

// SortLeads returns a sorted copy of leads. Text columns use English
// collation; equal keys keep their input order. Unknown fields sort by score.
func SortLeads(leads []CRMLead, field LeadSortField, descending bool) []CRMLead {
	out := slices.Clone(leads)
	if out == nil {
		out = []CRMLead{}
	}
	coll := collate.New(language.English, collate.IgnoreCase)

	var cmp func(a, b CRMLead) int
	switch field {
	case SortByValue:
		cmp = func(a, b CRMLead) int { return compareFloat(a.ProjectValue, b.ProjectValue) }
	case SortByFollowUp:
		cmp = func(a, b CRMLead) int { return coll.CompareString(a.FollowUpDate, b.FollowUpDate) }
	case SortByCompany:
		cmp = func(a, b CRMLead) int { return coll.CompareString(a.Company, b.Company) }
	case SortByUpdated:
		cmp = func(a, b CRMLead) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	default:
		cmp = func(a, b CRMLead) int { return a.Score - b.Score }
	}
	slices.SortStableFunc(out, func(a, b CRMLead) int {
		if descending {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return out
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func containsFolded(fold cases.Caser, s, foldedQuery string) bool {
	return strings.Contains(fold.String(s), foldedQuery)
}

func anyContainsFolded(fold cases.Caser, values []string, foldedQuery string) bool {
	for _, v := range values {
		if containsFolded(fold, v, foldedQuery) {
			return true
		}
	}
	return false
}

// TagSeparator joins lead tags inside a single CSV cell.
const TagSeparator = "; "

// TimestampLayout is how lead timestamps appear in exports.
const TimestampLayout = time.RFC3339

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimestampLayout)
}

var leadColumns = []column[CRMLead]{
	{"ID", func(l CRMLead) string { return l.ID }},
	{"Company", func(l CRMLead) string { return l.Company }},
	{"Contact", func(l CRMLead) string { return l.ContactName }},
	{"Title", func(l CRMLead) string { return l.Title }},
	{"Email", func(l CRMLead) string { return l.Email }},
	{"Phone", func(l CRMLead) string { return l.Phone }},
	{"Project Name", func(l CRMLead) string { return l.ProjectName }},
	{"Project Type", func(l CRMLead) string { return l.ProjectType }},
	{"Project Value", func(l CRMLead) string { return FormatAmount(l.ProjectValue) }},
	{"Project Address", func(l CRMLead) string { return l.ProjectAddress }},
	{"Status", func(l CRMLead) string { return l.Status.Label() }},
	{"Score", func(l CRMLead) string { return strconv.Itoa(l.Score) }},
	{"Source", func(l CRMLead) string { return l.Source }},
	{"Assigned To", func(l CRMLead) string { return l.AssignedTo }},
	{"Follow-Up Date", func(l CRMLead) string { return l.FollowUpDate }},
	{"Tags", func(l CRMLead) string { return strings.Join(l.Tags, TagSeparator) }},
	{"Notes", func(l CRMLead) string { return l.Notes }},
	{"Created", func(l CRMLead) string { return formatTimestamp(l.CreatedAt) }},
	{"Updated", func(l CRMLead) string { return formatTimestamp(l.UpdatedAt) }},
}

// CRMCSVHeaders returns the lead export header row.
func CRMCSVHeaders() []string {
	return columnHeaders(leadColumns)
}

// LeadToCSVRow builds the export row for one lead, positionally matching
// CRMCSVHeaders.
func LeadToCSVRow(lead CRMLead) []string {
	return columnRow(leadColumns, lead)
}

// LeadsToCSV exports leads in the given order.
func LeadsToCSV(leads []CRMLead) (string, error) {
	rows := make([][]string, len(leads))
	for i, l := range leads {
		rows[i] = LeadToCSVRow(l)
	}
	return ToCSV(CRMCSVHeaders(), rows)
}
