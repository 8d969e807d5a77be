// Package report renders the violations of a validation pass as text, JSON
// or a user supplied pongo2 template.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-formvalidator/pkg/constraint"
)

// FormPath labels violations attached to the root form in text output.
const FormPath = "(form)"

// Report is the serialisable outcome of one pass.
type Report struct {
	Form       string      `json:"form"`
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
}

// Violation is the serialisable form of constraint.Violation.
type Violation struct {
	Path       string            `json:"path"`
	Message    string            `json:"message"`
	Code       string            `json:"code,omitempty"`
	Constraint string            `json:"constraint,omitempty"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// New builds a report for form.
func New(form string, violations constraint.List) Report {
	out := Report{
		Form:       form,
		Valid:      len(violations) == 0,
		Violations: make([]Violation, 0, len(violations)),
	}
	for _, v := range violations {
		entry := Violation{
			Path:       v.Path,
			Message:    v.Message,
			Code:       v.Code,
			Parameters: v.Parameters,
		}
		if v.Constraint != nil {
			entry.Constraint = v.Constraint.Name()
		}
		out.Violations = append(out.Violations, entry)
	}
	return out
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText writes one line per violation under a summary line.
func WriteText(w io.Writer, r Report) error {
	if r.Valid {
		_, err := fmt.Fprintf(w, "%s: valid\n", r.Form)
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d violation(s)\n", r.Form, len(r.Violations))
	for _, v := range r.Violations {
		path := v.Path
		if path == "" {
			path = FormPath
		}
		fmt.Fprintf(&b, "  %s: %s [%s]\n", path, v.Message, v.Code)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
