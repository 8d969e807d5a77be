package definition

// FieldConfig describes a form or one of its fields.
type FieldConfig struct {
	Name                     string             `json:"name,omitempty" yaml:"name" toml:"name"`
	Type                     string             `json:"type,omitempty" yaml:"type" toml:"type"`
	Cascade                  *bool              `json:"cascade,omitempty" yaml:"cascade" toml:"cascade"`
	ValidationGroups         *[]string          `json:"validationGroups,omitempty" yaml:"validationGroups" toml:"validationGroups"`
	GroupSequence            []string           `json:"groupSequence,omitempty" yaml:"groupSequence" toml:"groupSequence"`
	AllowExtraFields         bool               `json:"allowExtraFields,omitempty" yaml:"allowExtraFields" toml:"allowExtraFields"`
	ExtraFieldsMessage       string             `json:"extraFieldsMessage,omitempty" yaml:"extraFieldsMessage" toml:"extraFieldsMessage"`
	InvalidMessage           string             `json:"invalidMessage,omitempty" yaml:"invalidMessage" toml:"invalidMessage"`
	InvalidMessageParameters map[string]string  `json:"invalidMessageParameters,omitempty" yaml:"invalidMessageParameters" toml:"invalidMessageParameters"`
	Constraints              []ConstraintConfig `json:"constraints,omitempty" yaml:"constraints" toml:"constraints"`
	Fields                   []FieldConfig      `json:"fields,omitempty" yaml:"fields" toml:"fields"`
	Buttons                  []ButtonConfig     `json:"buttons,omitempty" yaml:"buttons" toml:"buttons"`
}

// ButtonConfig describes a submit button.
type ButtonConfig struct {
	Name             string    `json:"name" yaml:"name" toml:"name"`
	ValidationGroups *[]string `json:"validationGroups,omitempty" yaml:"validationGroups" toml:"validationGroups"`
	GroupSequence    []string  `json:"groupSequence,omitempty" yaml:"groupSequence" toml:"groupSequence"`
}

// ConstraintConfig describes one explicit constraint. Kind is one of
// notBlank, length, range, regex or choice.
type ConstraintConfig struct {
	Kind    string   `json:"kind" yaml:"kind" toml:"kind"`
	Groups  []string `json:"groups,omitempty" yaml:"groups" toml:"groups"`
	Min     *float64 `json:"min,omitempty" yaml:"min" toml:"min"`
	Max     *float64 `json:"max,omitempty" yaml:"max" toml:"max"`
	Pattern string   `json:"pattern,omitempty" yaml:"pattern" toml:"pattern"`
	Choices []any    `json:"choices,omitempty" yaml:"choices" toml:"choices"`
	Message string   `json:"message,omitempty" yaml:"message" toml:"message"`
}

type documentFile struct {
	Forms map[string]FieldConfig `json:"forms" yaml:"forms" toml:"forms"`
}
