package report

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalidator/pkg/constraint"
)

type marker struct{}

func (marker) Name() string { return "Form" }

func sampleViolations() constraint.List {
	var list constraint.List
	extra := constraint.NewViolation("Unexpected: {{ extra_fields }}", map[string]string{"{{ extra_fields }}": `"foo"`}, constraint.CodeNoSuchField)
	extra.Constraint = marker{}
	list.Add(extra)

	blank := constraint.NewViolation("This value should not be blank.", nil, constraint.CodeBlank)
	blank.Path = "author.name"
	list.Add(blank)
	return list
}

func TestNew(t *testing.T) {
	got := New("article", sampleViolations())
	want := Report{
		Form:  "article",
		Valid: false,
		Violations: []Violation{
			{Path: "", Message: `Unexpected: "foo"`, Code: constraint.CodeNoSuchField, Constraint: "Form", Parameters: map[string]string{"{{ extra_fields }}": `"foo"`}},
			{Path: "author.name", Message: "This value should not be blank.", Code: constraint.CodeBlank},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, New("article", sampleViolations())); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "article: 2 violation(s)\n" +
		"  (form): Unexpected: \"foo\" [NO_SUCH_FIELD]\n" +
		"  author.name: This value should not be blank. [IS_BLANK]\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("text mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := WriteText(&buf, New("article", nil)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "article: valid\n" {
		t.Fatalf("unexpected valid output %q", buf.String())
	}
}

func TestTemplate(t *testing.T) {
	tpl, err := ParseTemplate(`{{ form }}:{% for v in violations %} {{ v.Path|default:"-" }}={{ v.Code }}{% endfor %}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf bytes.Buffer
	if err := tpl.Write(&buf, New("article", sampleViolations())); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got, want := buf.String(), "article: -=NO_SUCH_FIELD author.name=IS_BLANK"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTemplateEscapesMessages(t *testing.T) {
	tpl, err := ParseTemplate(`{% for v in violations %}<li>{{ v.Message }}</li>{% endfor %}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf bytes.Buffer
	if err := tpl.Write(&buf, New("article", sampleViolations()[:1])); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), `"foo"`) {
		t.Fatalf("expected quotes to be escaped, got %q", buf.String())
	}
}

func TestLoadTemplate(t *testing.T) {
	files := fstest.MapFS{
		"summary.tpl": {Data: []byte(`{% if valid %}ok{% else %}{{ report.Violations|length }} problems{% endif %}`)},
	}
	tpl, err := LoadTemplate(files, "summary.tpl")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var buf bytes.Buffer
	if err := tpl.Write(&buf, New("article", sampleViolations())); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "2 problems" {
		t.Fatalf("unexpected output %q", buf.String())
	}

	if _, err := LoadTemplate(files, "missing.tpl"); err == nil {
		t.Fatal("expected missing template error")
	}
	if _, err := ParseTemplate("  "); err == nil {
		t.Fatal("expected empty template error")
	}
}
