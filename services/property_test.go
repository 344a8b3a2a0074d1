package services

import (
	"encoding/csv"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// propertyTemplate declares keys where one is a prefix of another, a
// defaulted optional key and a required key without default.
func propertyTemplate() Template {
	return Template{
		ID:       "property",
		Category: CategoryContract,
		Variables: []VariableSpec{
			{Key: "A", Label: "A", Type: VariableText, Required: true},
			{Key: "AB", Label: "AB", Type: VariableText, Required: true},
			{Key: "DEF", Label: "Def", Type: VariableText, DefaultValue: strPtr("fallback-value")},
			{Key: "OPT", Label: "Opt", Type: VariableText},
		},
		Sections: []Section{
			{ID: "one", Title: "One", Body: "{{A}}|{{AB}}|{{A}}{{AB}}"},
			{ID: "two", Title: "Two", Body: "{{DEF}} and {{OPT}}."},
		},
	}
}

func TestTemplateProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	tmpl := propertyTemplate()

	properties.Property("no declared placeholder survives rendering", prop.ForAll(
		func(a, ab, opt string) bool {
			out := RenderTemplate(tmpl, Values{"A": a, "AB": ab, "OPT": opt})
			for _, v := range tmpl.Variables {
				if strings.Contains(out, "{{"+v.Key+"}}") {
					return false
				}
			}
			return true
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("prefix keys resolve to their own values", prop.ForAll(
		func(a, ab string) bool {
			out := RenderTemplate(tmpl, Values{"A": a, "AB": ab})
			return strings.Contains(out, a+"|"+ab+"|"+a+ab)
		},
		gen.Identifier(),
		gen.Identifier(),
	))

	properties.Property("omitted key renders its default", prop.ForAll(
		func(a string) bool {
			out := RenderTemplate(tmpl, Values{"A": a, "AB": a})
			return strings.Contains(out, "fallback-value and .")
		},
		gen.AlphaString(),
	))

	properties.Property("missing required is exactly the empty required keys", prop.ForAll(
		func(a, ab string) bool {
			got := MissingRequired(tmpl, Values{"A": a, "AB": ab})
			want := []string{}
			if a == "" {
				want = append(want, "A")
			}
			if ab == "" {
				want = append(want, "AB")
			}
			return reflect.DeepEqual(got, want)
		},
		gen.OneConstOf("", " ", "x", "Acme"),
		gen.OneConstOf("", "\t", "y", "Jane"),
	))

	properties.TestingRun(t)
}

func TestInvoiceProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	lineItems := gen.SliceOf(gopter.CombineGens(
		gen.Float64Range(0, 1000),
		gen.Float64Range(0, 10000),
	).Map(func(v []interface{}) LineItem {
		return LineItem{Quantity: v[0].(float64), UnitPrice: v[1].(float64)}
	}))

	properties.Property("total due equals the pipeline identity to the cent", prop.ForAll(
		func(items []LineItem, retainage, tax, previous float64) bool {
			got := ComputeInvoiceTotals(items, retainage, tax, previous)
			want := got.Subtotal - got.RetainageAmount + got.TaxAmount - previous
			return math.Abs(got.TotalDue-want) < 0.005
		},
		lineItems,
		gen.Float64Range(0, 20),
		gen.Float64Range(0, 10),
		gen.Float64Range(0, 50000),
	))

	properties.Property("every total has at most two decimals", prop.ForAll(
		func(items []LineItem, retainage, tax float64) bool {
			got := ComputeInvoiceTotals(items, retainage, tax, 0)
			for _, v := range []float64{got.Subtotal, got.RetainageAmount, got.TaxAmount, got.TotalDue} {
				cents := v * 100
				if math.Abs(cents-math.Round(cents)) > 1e-6*math.Max(1, math.Abs(cents)) {
					return false
				}
			}
			return true
		},
		lineItems,
		gen.Float64Range(0, 20),
		gen.Float64Range(0, 10),
	))

	properties.Property("retainage and tax never exceed their base", prop.ForAll(
		func(items []LineItem, retainage, tax float64) bool {
			got := ComputeInvoiceTotals(items, retainage, tax, 0)
			return got.RetainageAmount <= got.Subtotal+0.005 &&
				got.TaxAmount <= got.Subtotal-got.RetainageAmount+0.005
		},
		lineItems,
		gen.Float64Range(0, 100),
		gen.Float64Range(0, 100),
	))

	properties.TestingRun(t)
}

func TestCSVProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Bare carriage returns are normalized by RFC 4180 readers, so they are
	// excluded from the generated fields.
	field := gen.AnyString().SuchThat(func(s string) bool { return !strings.Contains(s, "\r") })
	row := gen.SliceOfN(3, field)

	properties.Property("csv output parses back to the same records", prop.ForAll(
		func(rows [][]string) bool {
			headers := []string{"one", "two, with comma", `three "quoted"`}
			out, err := ToCSV(headers, rows)
			if err != nil {
				return false
			}
			records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
			if err != nil {
				return false
			}
			return reflect.DeepEqual(records, append([][]string{headers}, rows...))
		},
		gen.SliceOf(row),
	))

	properties.Property("output ends with a newline", prop.ForAll(
		func(rows [][]string) bool {
			out, err := ToCSV([]string{"a", "b", "c"}, rows)
			return err == nil && strings.HasSuffix(out, "\n")
		},
		gen.SliceOf(row),
	))

	properties.TestingRun(t)
}
