package services

import (
	"fmt"

	"golang.org/x/text/cases"
)

// Catalog is the immutable, load-time template collection. All accessors
// are total: unknown ids and categories yield empty results, never errors.
type Catalog struct {
	templates []Template
	byID      map[string]int
}

// NewCatalog validates every template and indexes them by id. Catalog order
// is the order of templates.
func NewCatalog(templates []Template) (*Catalog, error) {
	c := &Catalog{
		templates: make([]Template, 0, len(templates)),
		byID:      make(map[string]int, len(templates)),
	}
	for _, t := range templates {
		if err := ValidateTemplate(t); err != nil {
			return nil, err
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		c.byID[t.ID] = len(c.templates)
		c.templates = append(c.templates, t)
	}
	return c, nil
}

// All returns every template in catalog order.
func (c *Catalog) All() []Template {
	if c == nil {
		return []Template{}
	}
	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.templates)
}

// ByCategory returns the templates of one category in catalog order.
func (c *Catalog) ByCategory(category Category) []Template {
	out := []Template{}
	if c == nil {
		return out
	}
	for _, t := range c.templates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Find looks a template up by id.
func (c *Catalog) Find(id string) (Template, bool) {
	if c == nil {
		return Template{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Template{}, false
	}
	return c.templates[i], true
}

// Categories returns the distinct categories present, in order of first
// appearance in the catalog.
func (c *Catalog) Categories() []Category {
	out := []Category{}
	if c == nil {
		return out
	}
	seen := make(map[Category]bool)
	for _, t := range c.templates {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}

// Search returns templates whose name, description or any tag contains
// query, compared case-insensitively. An empty query matches everything.
func (c *Catalog) Search(query string) []Template {
	out := []Template{}
	if c == nil {
		return out
	}
	fold := cases.Fold()
	q := fold.String(query)
	for _, t := range c.templates {
		if q == "" || containsFolded(fold, t.Name, q) || containsFolded(fold, t.Description, q) || anyContainsFolded(fold, t.Tags, q) {
			out = append(out, t)
		}
	}
	return out
}

var defaultCatalog = mustCatalog(builtinTemplates())

func mustCatalog(templates []Template) *Catalog {
	c, err := NewCatalog(templates)
	if err != nil {
		panic(fmt.Sprintf("built-in template catalog: %v", err))
	}
	return c
}

// DefaultCatalog returns the built-in construction template catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// AllTemplates returns every built-in template.
func AllTemplates() []Template {
	return defaultCatalog.All()
}

// GetTemplatesByCategory filters the built-in catalog by category.
func GetTemplatesByCategory(category Category) []Template {
	return defaultCatalog.ByCategory(category)
}
