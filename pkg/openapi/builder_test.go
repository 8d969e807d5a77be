package openapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalidator/pkg/constraint"
	"github.com/goliatone/go-formvalidator/pkg/form"
)

const petstore = `
openapi: 3.0.3
info:
  title: Pets
  version: "1.0"
paths:
  /pets:
    post:
      operationId: createPet
      x-formgen-buttons:
        draft: [Draft]
        publish: null
      requestBody:
        content:
          application/json:
            schema:
              type: object
              x-formgen-validation-groups: [Default, Registration]
              required: [name]
              properties:
                name:
                  type: string
                  minLength: 2
                  maxLength: 40
                  x-formgen-constraint-groups: [Registration]
                age:
                  type: integer
                  minimum: 0
                  maximum: 40
                kind:
                  type: string
                  enum: [cat, dog]
                owner:
                  type: object
                  additionalProperties: true
                  x-formgen-group-sequence: [Basic, Strict]
                  properties:
                    email:
                      type: string
                      pattern: '^[^@]+@[^@]+$'
                meta:
                  type: object
                  x-formgen-cascade: false
                  properties:
                    note:
                      type: string
      responses:
        "201":
          description: created
    get:
      operationId: listPets
      responses:
        "200":
          description: ok
  /pets/{id}:
    put:
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                name:
                  type: string
      responses:
        "200":
          description: ok
`

func TestParse_IndexesOperationsWithBodies(t *testing.T) {
	doc, err := Parse(context.Background(), []byte(petstore))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"createPet", "put:/pets/{id}"}
	if diff := cmp.Diff(want, doc.OperationIDs()); diff != "" {
		t.Fatalf("operation ids mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildForm_Tree(t *testing.T) {
	root, err := BuildForm(context.Background(), []byte(petstore), "createPet")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if root.Name() != "createPet" || !root.Compound() || !root.Cascade() {
		t.Fatalf("unexpected root: name=%q compound=%v cascade=%v", root.Name(), root.Compound(), root.Cascade())
	}
	var names []string
	for _, child := range root.Children() {
		names = append(names, child.Name())
	}
	if diff := cmp.Diff([]string{"age", "kind", "meta", "name", "owner"}, names); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}

	groups, ok := root.ValidationGroups()
	if !ok || !groups.Equal(form.List("Default", "Registration")) {
		t.Fatalf("root groups = %v (set=%v)", groups, ok)
	}

	draft := root.Button("draft")
	if draft == nil {
		t.Fatal("expected draft button")
	}
	if g, ok := draft.ValidationGroups(); !ok || !g.Equal(form.List("Draft")) {
		t.Fatalf("draft groups = %v", g)
	}
	if _, ok := root.Button("publish").ValidationGroups(); ok {
		t.Fatal("publish button should not define groups")
	}

	owner := root.Child("owner")
	if !owner.AllowsExtraFields() || !owner.Cascade() {
		t.Fatalf("owner: allowExtra=%v cascade=%v", owner.AllowsExtraFields(), owner.Cascade())
	}
	if g, _ := owner.ValidationGroups(); !g.Equal(form.Sequence("Basic", "Strict")) {
		t.Fatalf("owner groups = %v", g)
	}
	if root.Child("meta").Cascade() {
		t.Fatal("meta should not cascade")
	}
	if root.AllowsExtraFields() {
		t.Fatal("root should reject extra fields")
	}
}

func TestBuildForm_Constraints(t *testing.T) {
	root, err := BuildForm(context.Background(), []byte(petstore), "createPet")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	describe := func(node *form.Node) []string {
		var out []string
		for _, c := range node.Constraints() {
			out = append(out, c.Constraint.Name()+"@"+c.Group)
		}
		return out
	}

	cases := map[string][]string{
		"name":  {"NotBlank@Registration", "Length@Registration"},
		"age":   {"Range@Default"},
		"kind":  {"Choice@Default"},
		"owner": nil,
	}
	for field, want := range cases {
		if diff := cmp.Diff(want, describe(root.Child(field))); diff != "" {
			t.Errorf("%s constraints mismatch (-want +got):\n%s", field, diff)
		}
	}

	length := root.Child("name").Constraints()[1].Constraint.(constraint.Length)
	if length.Min != 2 || length.Max != 40 {
		t.Fatalf("length = %+v", length)
	}
	email := root.Child("owner").Child("email")
	regex, ok := email.Constraints()[0].Constraint.(constraint.Regex)
	if !ok || !regex.Pattern.MatchString("a@b") {
		t.Fatalf("expected email regex, got %#v", email.Constraints())
	}

	data, err := root.Child("age").Transformer()("7")
	if err != nil || data != int64(7) {
		t.Fatalf("age transformer = %v, %v", data, err)
	}
}

func TestBuildForm_Errors(t *testing.T) {
	if _, err := BuildForm(context.Background(), []byte(petstore), "missing"); !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := BuildForm(context.Background(), nil, "createPet"); err == nil {
		t.Fatal("expected error for empty document")
	}
	if _, err := BuildForm(context.Background(), []byte("openapi: 3.0.3\ninfo: {title: x, version: '1'}\npaths: {}\n"), "x"); err == nil {
		t.Fatal("expected error for document without paths")
	}
}

func TestLoader_Sources(t *testing.T) {
	ctx := context.Background()
	files := fstest.MapFS{"specs/pets.yaml": {Data: []byte(petstore)}}

	loader := NewLoader(WithFileSystem(files))
	data, err := loader.Load(ctx, SourceFromFS("specs/pets.yaml"))
	if err != nil || string(data) != petstore {
		t.Fatalf("fs load: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(petstore))
	}))
	defer server.Close()

	src, err := SourceFromURL(server.URL + "/pets.yaml")
	if err != nil {
		t.Fatalf("url source: %v", err)
	}
	if _, err := loader.Load(ctx, src); err == nil {
		t.Fatal("expected http to be disabled")
	}
	loader = NewLoader(WithHTTPClient(server.Client(), 0))
	if data, err := loader.Load(ctx, src); err != nil || string(data) != petstore {
		t.Fatalf("http load: %v", err)
	}

	if _, err := SourceFromURL("::"); err == nil {
		t.Fatal("expected invalid url error")
	}
}
