package model

// FieldType restricts the input widget a field renders as.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
)

// Field is one user-fillable slot of a template. Placeholder is an
// example hint shown to the user, never a default value.
type Field struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Placeholder string    `json:"placeholder,omitempty"`
}

// Template is one named prompt framework. Content holds zero or more
// {{field_id}} tokens, each of which must resolve to a declared field.
//
// Bundle entries carry pricing only: they are purchasable but have no
// content of their own.
type Template struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Domain      string  `json:"domain"`
	Description string  `json:"description"`
	Free        bool    `json:"free"`
	Bundle      bool    `json:"bundle"`
	PriceCents  int64   `json:"price_cents"`
	Currency    string  `json:"currency"`
	Fields      []Field `json:"fields,omitempty"`
	Content     string  `json:"-"`
}

// FieldValues maps field id -> user-entered text. Absent ids are
// treated as empty strings at substitution time.
type FieldValues map[string]string

// BundleTemplateID is the pseudo template id that grants full access.
const BundleTemplateID = "all"
