// Package catalog owns the immutable template catalog: the built-in
// prompt frameworks, their field schemas, and their pricing. The
// catalog is constructed once at startup and passed by reference;
// there is no package-level singleton.
package catalog

import (
	"fmt"
	"regexp"

	"prompt-template-store/internal/domain/model"
)

// tokenPattern matches one placeholder occurrence and captures the
// field id. Internal whitespace around the id is tolerated.
var tokenPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

type Catalog struct {
	templates []model.Template
	byID      map[string]*model.Template
}

// Load validates the built-in templates and returns the catalog.
// Validation is strict: duplicate template ids, duplicate field ids,
// unknown field types and orphan placeholder tokens all fail here, so
// rendering never has to fail later.
func Load() (*Catalog, error) {
	return New(builtinTemplates())
}

// New builds a catalog from the given templates, validating each.
func New(templates []model.Template) (*Catalog, error) {
	c := &Catalog{
		templates: templates,
		byID:      make(map[string]*model.Template, len(templates)),
	}
	for i := range c.templates {
		t := &c.templates[i]
		if t.ID == "" {
			return nil, fmt.Errorf("catalog: template %d has empty id", i)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate template id %q", t.ID)
		}
		if err := validateTemplate(t); err != nil {
			return nil, err
		}
		c.byID[t.ID] = t
	}
	return c, nil
}

func validateTemplate(t *model.Template) error {
	fields := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		if f.ID == "" {
			return fmt.Errorf("catalog: template %q has a field with empty id", t.ID)
		}
		if fields[f.ID] {
			return fmt.Errorf("catalog: template %q duplicates field id %q", t.ID, f.ID)
		}
		switch f.Type {
		case model.FieldTypeText, model.FieldTypeTextarea:
		default:
			return fmt.Errorf("catalog: template %q field %q has unknown type %q", t.ID, f.ID, f.Type)
		}
		fields[f.ID] = true
	}

	// Every token in content must resolve to a declared field.
	for _, m := range tokenPattern.FindAllStringSubmatch(t.Content, -1) {
		if !fields[m[1]] {
			return fmt.Errorf("catalog: template %q references undeclared field %q", t.ID, m[1])
		}
	}

	if t.Bundle && t.Content != "" {
		return fmt.Errorf("catalog: bundle %q must not carry content", t.ID)
	}
	if !t.Free && !t.Bundle && t.PriceCents <= 0 {
		return fmt.Errorf("catalog: paid template %q has no price", t.ID)
	}
	return nil
}

// ByID returns the template or nil.
func (c *Catalog) ByID(id string) *model.Template {
	return c.byID[id]
}

// List returns the templates in declaration order.
func (c *Catalog) List() []model.Template {
	out := make([]model.Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// Renderable reports whether the template has content to substitute
// into (bundles do not).
func (c *Catalog) Renderable(id string) bool {
	t := c.byID[id]
	return t != nil && !t.Bundle
}
