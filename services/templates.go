package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Category groups document templates in the library sidebar.
type Category string

const (
	CategoryProposal    Category = "proposal"
	CategoryContract    Category = "contract"
	CategoryChecklist   Category = "checklist"
	CategoryRunbook     Category = "runbook"
	CategoryBlueprint   Category = "blueprint"
	CategoryChangeOrder Category = "change-order"
	CategoryLienWaiver  Category = "lien-waiver"
)

var categoryLabels = map[Category]string{
	CategoryProposal:    "Proposals & Bids",
	CategoryContract:    "Contracts",
	CategoryChecklist:   "Checklists",
	CategoryRunbook:     "Runbooks",
	CategoryBlueprint:   "Blueprints",
	CategoryChangeOrder: "Change Orders",
	CategoryLienWaiver:  "Lien Waivers",
}

// Categories returns every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryProposal,
		CategoryContract,
		CategoryChecklist,
		CategoryRunbook,
		CategoryBlueprint,
		CategoryChangeOrder,
		CategoryLienWaiver,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// CategoryLabel returns the sidebar label for a category, or the raw value
// for an unknown one.
func CategoryLabel(c Category) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// VariableType controls which input a variable gets and how its value is
// checked by ValidateValues. Rendering treats every type as plain text.
type VariableType string

const (
	VariableText     VariableType = "text"
	VariableNumber   VariableType = "number"
	VariableCurrency VariableType = "currency"
	VariableDate     VariableType = "date"
	VariableSelect   VariableType = "select"
)

// Valid reports whether t is one of the known variable types.
func (t VariableType) Valid() bool {
	switch t {
	case VariableText, VariableNumber, VariableCurrency, VariableDate, VariableSelect:
		return true
	}
	return false
}

// VariableSpec describes one fill-in field of a template.
type VariableSpec struct {
	Key          string       `json:"key" yaml:"key"`
	Label        string       `json:"label" yaml:"label"`
	Type         VariableType `json:"type" yaml:"type"`
	Required     bool         `json:"required" yaml:"required"`
	DefaultValue *string      `json:"defaultValue,omitempty" yaml:"default,omitempty"`
	Placeholder  string       `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options      []string     `json:"options,omitempty" yaml:"options,omitempty"`
}

// Section is one block of template text containing {{KEY}} placeholders.
type Section struct {
	ID        string   `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Body      string   `json:"body" yaml:"body"`
	Variables []string `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// Template is a construction document template from the catalog.
type Template struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Category    Category       `json:"category" yaml:"category"`
	Description string         `json:"description" yaml:"description"`
	Tags        []string       `json:"tags" yaml:"tags"`
	Version     string         `json:"version" yaml:"version"`
	Variables   []VariableSpec `json:"variables" yaml:"variables"`
	Sections    []Section      `json:"sections" yaml:"sections"`
}

// Values maps variable keys to user-entered strings.
type Values map[string]string

const (
	placeholderOpen  = "{{"
	placeholderClose = "}}"
	sectionSeparator = "\n\n"
)

// RenderTemplate renders all sections of t in declared order with every
// declared placeholder replaced by its resolved value. A value resolves to
// the user's entry when non-empty, then the variable default, then "".
// Placeholders that match no declared key are left untouched.
func RenderTemplate(t Template, values Values) string {
	resolved := make(map[string]string, len(t.Variables))
	keys := make([]string, 0, len(t.Variables))
	for _, v := range t.Variables {
		resolved[v.Key] = resolveValue(v, values)
		keys = append(keys, v.Key)
	}
	// Longest key first so a key never shadows a longer one it prefixes.
	sort.SliceStable(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	blocks := make([]string, 0, len(t.Sections))
	for _, s := range t.Sections {
		body := substitute(s.Body, keys, resolved)
		blocks = append(blocks, "## "+s.Title+"\n\n"+body)
	}
	return strings.Join(blocks, sectionSeparator)
}

func resolveValue(v VariableSpec, values Values) string {
	if val := values[v.Key]; val != "" {
		return val
	}
	if v.DefaultValue != nil {
		return *v.DefaultValue
	}
	return ""
}

// substitute scans body once, left to right. Substituted text is never
// rescanned, so values containing "{{" cannot trigger further replacement.
func substitute(body string, keys []string, resolved map[string]string) string {
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		if strings.HasPrefix(body[i:], placeholderOpen) {
			if key, ok := matchKey(body[i+len(placeholderOpen):], keys); ok {
				b.WriteString(resolved[key])
				i += len(placeholderOpen) + len(key) + len(placeholderClose)
				continue
			}
		}
		b.WriteByte(body[i])
		i++
	}
	return b.String()
}

func matchKey(rest string, keys []string) (string, bool) {
	for _, k := range keys {
		if strings.HasPrefix(rest, k) && strings.HasPrefix(rest[len(k):], placeholderClose) {
			return k, true
		}
	}
	return "", false
}

// MissingRequired returns the keys of required variables whose value in
// values is absent or empty, in declaration order. A whitespace-only entry
// counts as filled. Defaults are not consulted; pass
// MergeValues(DefaultValues(t), edits) to count them.
func MissingRequired(t Template, values Values) []string {
	missing := []string{}
	for _, v := range t.Variables {
		if !v.Required {
			continue
		}
		if values[v.Key] == "" {
			missing = append(missing, v.Key)
		}
	}
	return missing
}

// DefaultValues returns the pre-filled form for t: each variable's default,
// or "" when it has none.
func DefaultValues(t Template) Values {
	out := make(Values, len(t.Variables))
	for _, v := range t.Variables {
		if v.DefaultValue != nil {
			out[v.Key] = *v.DefaultValue
		} else {
			out[v.Key] = ""
		}
	}
	return out
}

// MergeValues returns a new map holding base overlaid with the non-empty
// entries of overrides.
func MergeValues(base, overrides Values) Values {
	out := make(Values, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Placeholders returns the distinct placeholder keys written in body, in
// order of first appearance. Any text between "{{" and the next "}}" counts.
func Placeholders(body string) []string {
	var keys []string
	seen := make(map[string]bool)
	rest := body
	for {
		start := strings.Index(rest, placeholderOpen)
		if start < 0 {
			return keys
		}
		rest = rest[start+len(placeholderOpen):]
		end := strings.Index(rest, placeholderClose)
		if end < 0 {
			return keys
		}
		key := rest[:end]
		if key != "" && !strings.Contains(key, placeholderOpen) && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
		rest = rest[end+len(placeholderClose):]
	}
}

var (
	ErrUnknownCategory     = errors.New("unknown template category")
	ErrUnknownVariableType = errors.New("unknown variable type")
	ErrDuplicateVariable   = errors.New("duplicate variable key")
	ErrMissingOptions      = errors.New("select variable has no options")
	ErrUndeclaredKey       = errors.New("placeholder references undeclared variable")
)

// ValidateTemplate checks the structural invariants of a template: known
// category and variable types, unique keys, options on select variables and
// no section placeholder without a declared variable.
func ValidateTemplate(t Template) error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("template id is empty")
	}
	if !t.Category.Valid() {
		return fmt.Errorf("template %s: %w %q", t.ID, ErrUnknownCategory, t.Category)
	}

	declared := make(map[string]bool, len(t.Variables))
	for _, v := range t.Variables {
		if v.Key == "" {
			return fmt.Errorf("template %s: variable with empty key", t.ID)
		}
		if declared[v.Key] {
			return fmt.Errorf("template %s: %w %q", t.ID, ErrDuplicateVariable, v.Key)
		}
		declared[v.Key] = true
		if !v.Type.Valid() {
			return fmt.Errorf("template %s: variable %s: %w %q", t.ID, v.Key, ErrUnknownVariableType, v.Type)
		}
		if v.Type == VariableSelect && len(v.Options) == 0 {
			return fmt.Errorf("template %s: variable %s: %w", t.ID, v.Key, ErrMissingOptions)
		}
	}

	for _, s := range t.Sections {
		for _, key := range Placeholders(s.Body) {
			if !declared[key] {
				return fmt.Errorf("template %s: section %s: %w %q", t.ID, s.ID, ErrUndeclaredKey, key)
			}
		}
	}
	return nil
}
