// Package render implements placeholder substitution for template
// content. Rendering is a pure function of the template and the field
// values; it never fails, because the catalog already validated that
// every token resolves to a declared field.
package render

import (
	"regexp"

	"prompt-template-store/internal/domain/model"
)

// Result is a rendered prompt plus an estimated token count.
type Result struct {
	Prompt string `json:"prompt"`
	Tokens int    `json:"tokens"`
}

// tokenPattern matches one placeholder occurrence and captures the
// field id. Internal whitespace around the id is tolerated. The id
// match is exact, so substituting "role" never touches
// "{{role_specific}}".
var tokenPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Render replaces every placeholder of a declared field with its
// value in a single scan over the content. Fields absent from values
// substitute as the empty string. Substituted values are never
// rescanned, so a value containing "{{...}}" stays verbatim in the
// output. Tokens whose id is not declared on the template pass
// through unchanged.
func Render(t *model.Template, values model.FieldValues) string {
	declared := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		declared[f.ID] = true
	}
	return tokenPattern.ReplaceAllStringFunc(t.Content, func(tok string) string {
		id := tokenPattern.FindStringSubmatch(tok)[1]
		if !declared[id] {
			return tok
		}
		return values[id]
	})
}
