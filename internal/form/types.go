package form

// FieldType is the simplified enum for wizard-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeFile    FieldType = "file"
)

const (
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

// ValidationRule represents a single validation constraint applied to a field.
// Numeric bounds and length limits encode their threshold in Params["value"]
// while pattern rules preserve the original expression in Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Field models an individual input inside a wizard step. Struct fields are
// annotated so definitions can be serialised directly when needed.
type Field struct {
	Name        string           `json:"name" yaml:"name"`
	Type        FieldType        `json:"type" yaml:"type"`
	Format      string           `json:"format,omitempty" yaml:"format,omitempty"`
	Required    bool             `json:"required" yaml:"required"`
	Label       string           `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string           `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Default     string           `json:"default,omitempty" yaml:"default,omitempty"`
	Enum        []string         `json:"enum,omitempty" yaml:"enum,omitempty"`
	Validations []ValidationRule `json:"validations,omitempty" yaml:"validations,omitempty"`
}

// StepSpec describes a single page of the wizard: the fields collected on that
// page plus presentation metadata renderers can use.
type StepSpec struct {
	Name        string  `json:"name" yaml:"name"`
	Title       string  `json:"title,omitempty" yaml:"title,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Template    string  `json:"template,omitempty" yaml:"template,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields"`
}

// FieldNames returns the declared field names in order.
func (s StepSpec) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		names = append(names, field.Name)
	}
	return names
}

// HasFileFields reports whether any field on the step is file-typed. File
// inputs cannot round-trip through hidden text fields, so the wizard only
// allows them on the final step.
func (s StepSpec) HasFileFields() bool {
	for _, field := range s.Fields {
		if field.Type == FieldTypeFile {
			return true
		}
	}
	return false
}

// CleanedData holds the typed, validated values for one step keyed by bare
// field name.
type CleanedData map[string]any

// FieldErrors maps field names to their validation messages.
type FieldErrors map[string][]string
