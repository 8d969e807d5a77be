package report

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// Template renders reports through pongo2. The context exposes "report",
// "form", "valid" and "violations". Output is HTML-escaped unless the
// template turns autoescape off.
type Template struct {
	tpl *pongo2.Template
}

// ParseTemplate compiles src.
func ParseTemplate(src string) (*Template, error) {
	if strings.TrimSpace(src) == "" {
		return nil, errors.New("report: template is empty")
	}
	tpl, err := pongo2.FromString(src)
	if err != nil {
		return nil, fmt.Errorf("report: parse template: %w", err)
	}
	return &Template{tpl: tpl}, nil
}

// LoadTemplate compiles name from fsys. Includes and extends resolve inside
// the same filesystem.
func LoadTemplate(fsys fs.FS, name string) (*Template, error) {
	if fsys == nil {
		return nil, errors.New("report: filesystem is nil")
	}
	set := pongo2.NewSet("report", pongo2.NewFSLoader(fsys))
	tpl, err := set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("report: load template %q: %w", name, err)
	}
	return &Template{tpl: tpl}, nil
}

// Write renders r to w.
func (t *Template) Write(w io.Writer, r Report) error {
	if t == nil || t.tpl == nil {
		return errors.New("report: template is nil")
	}
	ctx := pongo2.Context{
		"report":     r,
		"form":       r.Form,
		"valid":      r.Valid,
		"violations": r.Violations,
	}
	if err := t.tpl.ExecuteWriter(ctx, w); err != nil {
		return fmt.Errorf("report: render template: %w", err)
	}
	return nil
}
