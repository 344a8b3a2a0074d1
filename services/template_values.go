package services

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// DateLayout is the format date variables are entered in.
const DateLayout = "2006-01-02"

// ValidateValues checks the format of each non-empty value against its
// variable type and returns key -> message for every problem found.
// Blank values are ignored here; MissingRequired reports those.
// Rendering never depends on this result.
func ValidateValues(t Template, values Values) map[string]string {
	problems := make(map[string]string)
	for _, v := range t.Variables {
		raw := strings.TrimSpace(values[v.Key])
		if raw == "" {
			continue
		}
		if err := validation.Validate(raw, variableRules(v)...); err != nil {
			problems[v.Key] = v.Label + ": " + err.Error()
		}
	}
	return problems
}

func variableRules(v VariableSpec) []validation.Rule {
	switch v.Type {
	case VariableNumber:
		return []validation.Rule{is.Float}
	case VariableCurrency:
		return []validation.Rule{validation.By(func(value interface{}) error {
			s, _ := value.(string)
			return validation.Validate(normalizeAmount(s), is.Float)
		})}
	case VariableDate:
		return []validation.Rule{validation.Date(DateLayout)}
	case VariableSelect:
		opts := make([]interface{}, len(v.Options))
		for i, o := range v.Options {
			opts[i] = o
		}
		return []validation.Rule{validation.In(opts...).Error("must be one of the listed options")}
	}
	return nil
}

// normalizeAmount strips currency symbols and grouping commas so "$1,250.00"
// can be parsed as a number.
func normalizeAmount(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	return strings.ReplaceAll(s, ",", "")
}
