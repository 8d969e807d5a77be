package openapi

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formvalidator/pkg/constraint"
	"github.com/goliatone/go-formvalidator/pkg/form"
)

const (
	extensionValidationGroups = "x-formgen-validation-groups"
	extensionGroupSequence    = "x-formgen-group-sequence"
	extensionCascade          = "x-formgen-cascade"
	extensionConstraintGroups = "x-formgen-constraint-groups"
	extensionButtons          = "x-formgen-buttons"
)

// ErrOperationNotFound is returned when the document has no such operation.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// Operation is an operation that carries a request body.
type Operation struct {
	ID     string
	Method string
	Path   string
	op     *openapi3.Operation
	schema *openapi3.SchemaRef
}

// Document is a parsed OpenAPI document indexed by operation id.
type Document struct {
	operations map[string]Operation
}

// Parse loads raw with kin-openapi and indexes every operation that has a
// request body. Operations without an operationId are keyed "method:path".
func Parse(ctx context.Context, raw []byte) (*Document, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}

	doc := &Document{operations: make(map[string]Operation)}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			schema := requestSchema(op)
			if schema == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			doc.operations[id] = Operation{ID: id, Method: method, Path: path, op: op, schema: schema}
		}
	}
	return doc, nil
}

// OperationIDs lists the operations a form can be built for, sorted.
func (d *Document) OperationIDs() []string {
	ids := make([]string, 0, len(d.operations))
	for id := range d.operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Build creates a fresh form tree for operationID.
func (d *Document) Build(operationID string) (*form.Node, error) {
	operation, ok := d.operations[operationID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	if schemaType(operation.schema.Value) != "object" {
		return nil, fmt.Errorf("openapi: operation %q request body is not an object", operationID)
	}

	root, err := buildNode(operationID, operation.schema.Value, false)
	if err != nil {
		return nil, fmt.Errorf("openapi: operation %q: %w", operationID, err)
	}
	buttons, err := buttonsFrom(operation.op.Extensions)
	if err != nil {
		return nil, fmt.Errorf("openapi: operation %q: %w", operationID, err)
	}
	for _, button := range buttons {
		if err := root.AddButton(button); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// BuildForm parses raw and builds the form for operationID.
func BuildForm(ctx context.Context, raw []byte, operationID string) (*form.Node, error) {
	doc, err := Parse(ctx, raw)
	if err != nil {
		return nil, err
	}
	return doc.Build(operationID)
}

func requestSchema(op *openapi3.Operation) *openapi3.SchemaRef {
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema
		}
	}
	return nil
}

func buildNode(name string, schema *openapi3.Schema, required bool) (*form.Node, error) {
	kind := schemaType(schema)
	var options []form.Option

	switch kind {
	case "object":
		options = append(options, form.WithCompound())
		if cascade, ok := schema.Extensions[extensionCascade].(bool); !ok || cascade {
			options = append(options, form.WithCascade())
		}
		if extra := schema.AdditionalProperties; (extra.Has != nil && *extra.Has) || extra.Schema != nil {
			options = append(options, form.WithAllowExtraFields(true))
		}
	case "array":
	default:
		fieldType, ok := form.ParseFieldType(kind)
		if !ok {
			return nil, fmt.Errorf("property %q: unsupported type %q", name, kind)
		}
		options = append(options, form.WithTransformer(form.TransformerFor(fieldType)))
	}

	if groups, ok, err := groupsFrom(schema.Extensions); err != nil {
		return nil, fmt.Errorf("property %q: %w", name, err)
	} else if ok {
		options = append(options, form.WithValidationGroups(groups))
	}

	constraintGroups, err := stringList(schema.Extensions[extensionConstraintGroups])
	if err != nil {
		return nil, fmt.Errorf("property %q: %s: %w", name, extensionConstraintGroups, err)
	}
	constraints, err := constraintsFrom(schema, required)
	if err != nil {
		return nil, fmt.Errorf("property %q: %w", name, err)
	}
	for _, c := range constraints {
		options = append(options, form.WithConstraint(c, constraintGroups...))
	}

	node := form.New(name, options...)
	if kind != "object" {
		return node, nil
	}

	requiredSet := make(map[string]struct{}, len(schema.Required))
	for _, key := range schema.Required {
		requiredSet[key] = struct{}{}
	}
	names := make([]string, 0, len(schema.Properties))
	for key := range schema.Properties {
		names = append(names, key)
	}
	sort.Strings(names)
	for _, key := range names {
		ref := schema.Properties[key]
		if ref == nil || ref.Value == nil {
			continue
		}
		_, isRequired := requiredSet[key]
		child, err := buildNode(key, ref.Value, isRequired)
		if err != nil {
			return nil, err
		}
		if err := node.Add(child); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func constraintsFrom(schema *openapi3.Schema, required bool) ([]constraint.Constraint, error) {
	var out []constraint.Constraint
	if required {
		out = append(out, constraint.NotBlank{})
	}
	if schema.MinLength > 0 || schema.MaxLength != nil {
		length := constraint.Length{Min: int(schema.MinLength)}
		if schema.MaxLength != nil {
			length.Max = int(*schema.MaxLength)
		}
		out = append(out, length)
	}
	if schema.Min != nil || schema.Max != nil {
		out = append(out, constraint.Range{Min: schema.Min, Max: schema.Max})
	}
	if schema.Pattern != "" {
		pattern, err := regexp.Compile(schema.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern: %w", err)
		}
		out = append(out, constraint.Regex{Pattern: pattern})
	}
	if len(schema.Enum) > 0 {
		out = append(out, constraint.Choice{Choices: append([]any(nil), schema.Enum...)})
	}
	return out, nil
}

func groupsFrom(extensions map[string]any) (form.Groups, bool, error) {
	if raw, ok := extensions[extensionGroupSequence]; ok {
		names, err := stringList(raw)
		if err != nil {
			return form.Groups{}, false, fmt.Errorf("%s: %w", extensionGroupSequence, err)
		}
		return form.Sequence(names...), true, nil
	}
	if raw, ok := extensions[extensionValidationGroups]; ok {
		names, err := stringList(raw)
		if err != nil {
			return form.Groups{}, false, fmt.Errorf("%s: %w", extensionValidationGroups, err)
		}
		return form.List(names...), true, nil
	}
	return form.Groups{}, false, nil
}

// buttonsFrom reads x-formgen-buttons, a mapping of button name to its
// validation groups. A null value declares a button without groups.
func buttonsFrom(extensions map[string]any) ([]*form.Button, error) {
	raw, ok := extensions[extensionButtons]
	if !ok {
		return nil, nil
	}
	mapped, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a mapping, got %T", extensionButtons, raw)
	}
	names := make([]string, 0, len(mapped))
	for name := range mapped {
		names = append(names, name)
	}
	sort.Strings(names)

	buttons := make([]*form.Button, 0, len(names))
	for _, name := range names {
		if mapped[name] == nil {
			buttons = append(buttons, form.NewButton(name))
			continue
		}
		groups, err := stringList(mapped[name])
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", extensionButtons, name, err)
		}
		buttons = append(buttons, form.NewButton(name, form.ButtonValidationGroups(form.List(groups...))))
	}
	return buttons, nil
}

func stringList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected group names, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list of group names, got %T", raw)
	}
}

func schemaType(schema *openapi3.Schema) string {
	if schema == nil {
		return ""
	}
	if schema.Type != nil {
		for _, t := range schema.Type.Slice() {
			if t != "null" {
				return t
			}
		}
	}
	if len(schema.Properties) > 0 {
		return "object"
	}
	return "string"
}
