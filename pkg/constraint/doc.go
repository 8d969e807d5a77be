// Package constraint defines the constraint and violation vocabulary shared by
// the form validator and the constraint engine. Constraints are attached to
// validation groups through Grouped pairs; built-in checkers (NotBlank, Length,
// Range, Regex, Choice) cover the rules derived from form definitions and
// OpenAPI schemas. Violations carry a rendered message, the raw template and
// parameters, the offending value, a stable code, and the constraint that
// produced them.
package constraint
