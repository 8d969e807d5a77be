package definition

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-formvalidator/pkg/constraint"
	"github.com/goliatone/go-formvalidator/pkg/form"
)

func buildNode(cfg FieldConfig, path string) (*form.Node, error) {
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		return nil, fmt.Errorf("field under %q has no name", path)
	}

	fieldType, ok := form.ParseFieldType(cfg.Type)
	if !ok {
		return nil, fmt.Errorf("field %q: unknown type %q", path, cfg.Type)
	}
	if len(cfg.Fields) > 0 {
		fieldType = form.FieldTypeObject
	}

	options := []form.Option{
		form.WithAllowExtraFields(cfg.AllowExtraFields),
		form.WithExtraFieldsMessage(cfg.ExtraFieldsMessage),
		form.WithInvalidMessage(cfg.InvalidMessage, cfg.InvalidMessageParameters),
	}
	if fieldType == form.FieldTypeObject {
		options = append(options, form.WithCompound())
		if cfg.Cascade == nil || *cfg.Cascade {
			options = append(options, form.WithCascade())
		}
	} else {
		if cfg.Cascade != nil && *cfg.Cascade {
			options = append(options, form.WithCascade())
		}
		options = append(options, form.WithTransformer(form.TransformerFor(fieldType)))
	}
	if groups, ok := groupsFrom(cfg.ValidationGroups, cfg.GroupSequence); ok {
		options = append(options, form.WithValidationGroups(groups))
	}
	for idx, cc := range cfg.Constraints {
		c, err := compileConstraint(cc)
		if err != nil {
			return nil, fmt.Errorf("field %q constraint #%d: %w", path, idx, err)
		}
		options = append(options, form.WithConstraint(c, cc.Groups...))
	}

	node := form.New(name, options...)
	for _, child := range cfg.Fields {
		childNode, err := buildNode(child, path+"."+strings.TrimSpace(child.Name))
		if err != nil {
			return nil, err
		}
		if err := node.Add(childNode); err != nil {
			return nil, err
		}
	}
	for _, bc := range cfg.Buttons {
		var buttonOptions []form.ButtonOption
		if groups, ok := groupsFrom(bc.ValidationGroups, bc.GroupSequence); ok {
			buttonOptions = append(buttonOptions, form.ButtonValidationGroups(groups))
		}
		if strings.TrimSpace(bc.Name) == "" {
			return nil, fmt.Errorf("field %q: button without a name", path)
		}
		if err := node.AddButton(form.NewButton(bc.Name, buttonOptions...)); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func groupsFrom(list *[]string, sequence []string) (form.Groups, bool) {
	if len(sequence) > 0 {
		return form.Sequence(sequence...), true
	}
	if list != nil {
		return form.List(*list...), true
	}
	return form.Groups{}, false
}

func compileConstraint(cfg ConstraintConfig) (constraint.Constraint, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "notblank", "not_blank", "required":
		return constraint.NotBlank{Message: cfg.Message}, nil
	case "length":
		if cfg.Min == nil && cfg.Max == nil {
			return nil, fmt.Errorf("length needs min or max")
		}
		c := constraint.Length{}
		if cfg.Min != nil {
			c.Min = int(*cfg.Min)
		}
		if cfg.Max != nil {
			c.Max = int(*cfg.Max)
		}
		return c, nil
	case "range":
		if cfg.Min == nil && cfg.Max == nil {
			return nil, fmt.Errorf("range needs min or max")
		}
		return constraint.Range{Min: cfg.Min, Max: cfg.Max}, nil
	case "regex", "pattern":
		pattern, err := regexp.Compile(cfg.Pattern)
		if err != nil {
			return nil, fmt.Errorf("regex: %w", err)
		}
		return constraint.Regex{Pattern: pattern, Message: cfg.Message}, nil
	case "choice", "enum":
		if len(cfg.Choices) == 0 {
			return nil, fmt.Errorf("choice needs choices")
		}
		return constraint.Choice{Choices: append([]any(nil), cfg.Choices...)}, nil
	default:
		return nil, fmt.Errorf("unknown constraint kind %q", cfg.Kind)
	}
}
