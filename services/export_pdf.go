package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	grayText   = &props.Color{Red: 80, Green: 80, Blue: 80}
	footerGray = &props.Color{Red: 140, Green: 140, Blue: 140}
	headerBg   = &props.Color{Red: 33, Green: 37, Blue: 41}
	summaryBg  = &props.Color{Red: 240, Green: 240, Blue: 240}
)

func newPDF(o orientation.Type) core.Maroto {
	cfg := config.NewBuilder().
		WithOrientation(o).
		WithPageSize(pagesize.Letter).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()
	return maroto.New(cfg)
}

func generateBytes(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateInvoicePDF renders an AIA-style progress billing invoice: parties,
// dates, line items and the subtotal/retainage/tax/previous payments/total
// due block. Totals are recomputed with CalculateInvoice.
func GenerateInvoicePDF(inv Invoice, now time.Time) ([]byte, error) {
	inv = CalculateInvoice(inv)
	m := newPDF(orientation.Vertical)

	addInvoiceHeader(m, inv)
	addInvoiceParties(m, inv)
	addLineItemHeader(m)
	for i, item := range inv.LineItems {
		addLineItemRow(m, i+1, item)
	}
	addInvoiceSummary(m, inv)
	if inv.Notes != "" {
		m.AddRows(row.New(4))
		addParagraph(m, "Notes: "+inv.Notes, 8, fontstyle.Italic)
	}
	addFooter(m, now)

	return generateBytes(m)
}

func addInvoiceHeader(m core.Maroto, inv Invoice) {
	m.AddRows(
		row.New(12).Add(
			col.New(8).Add(
				text.New("INVOICE "+inv.InvoiceNumber, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(4).Add(
				text.New(strings.ToUpper(string(inv.Status)), props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: grayText,
				}),
			),
		),
	)
	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(
				text.New("Project: "+inv.ProjectName, props.Text{Size: 9, Align: align.Left, Color: grayText}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s   Due: %s", inv.InvoiceDate, inv.DueDate), props.Text{Size: 9, Align: align.Right, Color: grayText}),
			),
		),
	)
	if inv.PaymentTerms != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(
					text.New("Terms: "+inv.PaymentTerms, props.Text{Size: 9, Align: align.Right, Color: grayText}),
				),
			),
		)
	}
	m.AddRows(row.New(4))
}

func addInvoiceParties(m core.Maroto, inv Invoice) {
	label := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}
	body := props.Text{Size: 8, Align: align.Left}

	m.AddRows(
		row.New(5).Add(
			col.New(6).Add(text.New("FROM", label)),
			col.New(6).Add(text.New("BILL TO", label)),
		),
	)
	from := nonEmpty(inv.ContractorName, inv.ContractorEmail, licenseLine(inv.ContractorLicense))
	to := nonEmpty(inv.ClientCompany, inv.ClientName, inv.ClientEmail)
	for i := 0; i < max(len(from), len(to)); i++ {
		m.AddRows(
			row.New(5).Add(
				col.New(6).Add(text.New(at(from, i), body)),
				col.New(6).Add(text.New(at(to, i), body)),
			),
		)
	}
	m.AddRows(row.New(6))
}

func licenseLine(license string) string {
	if license == "" {
		return ""
	}
	return "License " + license
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func addLineItemHeader(m core.Maroto) {
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := &props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(headerCell),
			col.New(1).Add(text.New("Div", headerText)).WithStyle(headerCell),
			col.New(4).Add(text.New("Description", headerTextLeft)).WithStyle(headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(headerCell),
			col.New(1).Add(text.New("Unit", headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New("Unit Price", headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New("Amount", headerText)).WithStyle(headerCell),
		),
	)
}

func addLineItemRow(m core.Maroto, index int, item LineItem) {
	base := props.Text{Size: 7, Align: align.Center}
	left := base
	left.Align = align.Left
	right := base
	right.Align = align.Right

	var cell *props.Cell
	if index%2 == 0 {
		cell = &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
	}
	cols := []core.Col{
		col.New(1).Add(text.New(fmt.Sprintf("%d", index), base)),
		col.New(1).Add(text.New(item.Division, base)),
		col.New(4).Add(text.New(item.Description, left)),
		col.New(1).Add(text.New(FormatQuantity(item.Quantity), right)),
		col.New(1).Add(text.New(item.Unit, base)),
		col.New(2).Add(text.New(FormatCurrency(item.UnitPrice), right)),
		col.New(2).Add(text.New(FormatCurrency(item.Amount), right)),
	}
	if cell != nil {
		for _, c := range cols {
			c.WithStyle(cell)
		}
	}
	m.AddRows(row.New(7).Add(cols...))
}

func addInvoiceSummary(m core.Maroto, inv Invoice) {
	m.AddRows(row.New(6))

	labelStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	lines := []SummaryLine{
		{"Subtotal", FormatCurrency(inv.Subtotal)},
		{"Retainage (" + FormatPercent(inv.RetainagePercent) + ")", "-" + FormatCurrency(inv.RetainageAmount)},
		{"Tax (" + FormatPercent(inv.TaxPercent) + ")", FormatCurrency(inv.TaxAmount)},
		{"Less Previous Payments", "-" + FormatCurrency(inv.PreviousPayments)},
		{"Total Due", FormatDisplayTotal(inv.TotalDue)},
	}
	for _, l := range lines {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(text.New(l.Label, labelStyle)).WithStyle(summaryCell),
				col.New(4).Add(text.New(l.Value, valueStyle)).WithStyle(summaryCell),
			),
		)
	}
}

// GenerateDocumentPDF renders a filled template as a PDF. "## " lines become
// section headings; other lines are wrapped body text.
func GenerateDocumentPDF(title, body string, now time.Time) ([]byte, error) {
	m := newPDF(orientation.Vertical)

	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)
	m.AddRows(row.New(4))

	for _, line := range strings.Split(body, "\n") {
		switch {
		case strings.HasPrefix(line, "## "):
			m.AddRows(row.New(3))
			addParagraph(m, strings.TrimPrefix(line, "## "), 11, fontstyle.Bold)
		case strings.TrimSpace(line) == "":
			m.AddRows(row.New(3))
		default:
			addParagraph(m, line, 9, fontstyle.Normal)
		}
	}
	addFooter(m, now)

	return generateBytes(m)
}

// pdfWrapWidth is the approximate character capacity of one body line on a
// portrait Letter page at 9pt.
const pdfWrapWidth = 100

// addParagraph adds text pre-wrapped into fixed-height rows, so long
// paragraphs never overflow a single row.
func addParagraph(m core.Maroto, s string, size float64, style fontstyle.Type) {
	for _, line := range wrapText(s, pdfWrapWidth) {
		m.AddRows(
			row.New(size/2+1).Add(
				col.New(12).Add(
					text.New(line, props.Text{Size: size, Style: style, Align: align.Left}),
				),
			),
		)
	}
}

// wrapText breaks s into lines of at most width runes on word boundaries.
// Words longer than width are split.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	var cur []rune
	for _, w := range words {
		word := []rune(w)
		for len(word) > width {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			lines = append(lines, string(word[:width]))
			word = word[width:]
		}
		switch {
		case len(cur) == 0:
			cur = append(cur, word...)
		case len(cur)+1+len(word) <= width:
			cur = append(append(cur, ' '), word...)
		default:
			lines = append(lines, string(cur))
			cur = append([]rune(nil), word...)
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}

// addFooter adds the generated-date line at the bottom.
func addFooter(m core.Maroto, now time.Time) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					"Generated on "+now.Format(DateLayout),
					props.Text{Size: 7, Align: align.Left, Color: footerGray},
				),
			),
		),
	)
}
