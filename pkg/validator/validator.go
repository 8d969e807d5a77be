package validator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-formvalidator/pkg/constraint"
	"github.com/goliatone/go-formvalidator/pkg/form"
	"github.com/goliatone/go-formvalidator/pkg/groups"
)

// ParamExtraFields holds the quoted, comma-joined extra field names.
const ParamExtraFields = "{{ extra_fields }}"

// ExecutionContext is the constraint engine seen from the validator. Both
// validate calls append any violations to the same ordered list AddViolation
// writes to.
type ExecutionContext interface {
	ValidateImplicit(ctx context.Context, data any, groups form.Groups) error
	ValidateExplicit(ctx context.Context, data any, c constraint.Constraint, group string) error
	AddViolation(v constraint.Violation)
}

// FormConstraint is the form-level constraint synthesized violations are
// attributed to.
type FormConstraint struct{}

func (FormConstraint) Name() string { return "Form" }

// Outcome is the terminal state of one node's validation.
type Outcome uint8

const (
	OutcomePending Outcome = iota
	OutcomeSkipped
	OutcomeNotSynchronized
	OutcomeValidated
	OutcomeValidatedWithExtraFields
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeNotSynchronized:
		return "not-synchronized"
	case OutcomeValidated:
		return "validated"
	case OutcomeValidatedWithExtraFields:
		return "validated+extra-fields"
	default:
		return "pending"
	}
}

// Option customises the validator.
type Option func(*Validator)

// WithLogger routes decision logs to logger.
func WithLogger(logger *log.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithSanitizer replaces the sanitizer applied to user-controlled text placed
// in message parameters. Passing nil keeps the text as submitted.
func WithSanitizer(fn func(string) string) Option {
	return func(v *Validator) {
		v.sanitize = fn
	}
}

// Validator applies the form-level validation rules to a node.
type Validator struct {
	logger   *log.Logger
	sanitize func(string) string
}

// New constructs a Validator. By default it logs nowhere and leaves message
// parameters as submitted; see WithSanitizer and StrictSanitizer.
func New(options ...Option) *Validator {
	v := &Validator{
		logger: log.New(io.Discard),
	}
	for _, opt := range options {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Validate runs the decision table for node. A nil marker defaults to
// FormConstraint. Errors come from malformed group specs or the execution
// context; user input problems are reported as violations.
func (v *Validator) Validate(ctx context.Context, exec ExecutionContext, node *form.Node, marker constraint.Constraint) (Outcome, error) {
	if exec == nil {
		return OutcomePending, errors.New("validator: execution context is nil")
	}
	if node == nil {
		return OutcomePending, errors.New("validator: node is nil")
	}
	if err := ctx.Err(); err != nil {
		return OutcomePending, err
	}
	if marker == nil {
		marker = FormConstraint{}
	}
	logger := v.logger.With("node", displayPath(node))

	data := node.Data()
	if !Validatable(data) && !CascadeEligible(node) {
		logger.Debug("skipped", "reason", "data is not validatable and no cascade reaches the node")
		return OutcomeSkipped, nil
	}

	resolved, err := groups.Resolve(node)
	if err != nil {
		return OutcomePending, fmt.Errorf("validator: %w", err)
	}

	if !node.Synchronized() {
		exec.AddViolation(v.notSynchronized(node, marker))
		logger.Debug("not synchronized", "cause", node.TransformationFailure())
		return OutcomeNotSynchronized, nil
	}

	if Validatable(data) && HasGroups(resolved) && CascadeEligible(node) {
		logger.Debug("validating implicit constraints", "groups", resolved)
		if err := exec.ValidateImplicit(ctx, data, resolved); err != nil {
			return OutcomePending, fmt.Errorf("validator: implicit constraints of %q: %w", displayPath(node), err)
		}
	}

	for _, grouped := range node.Constraints() {
		if err := exec.ValidateExplicit(ctx, data, grouped.Constraint, grouped.Group); err != nil {
			return OutcomePending, fmt.Errorf("validator: %s constraint of %q: %w", grouped.Constraint.Name(), displayPath(node), err)
		}
	}

	if node.Compound() && len(node.ExtraFields()) > 0 && !node.AllowsExtraFields() {
		exec.AddViolation(v.extraFields(node, marker))
		logger.Debug("extra fields", "names", node.ExtraFields())
		return OutcomeValidatedWithExtraFields, nil
	}
	return OutcomeValidated, nil
}

// Validatable reports whether data has structure a constraint engine can
// descend into: maps, slices, arrays, structs (or pointers to them), and
// values declaring their own constraints.
func Validatable(data any) bool {
	if data == nil {
		return false
	}
	if _, ok := data.(constraint.Provider); ok {
		return true
	}
	rv := reflect.ValueOf(data)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	default:
		return false
	}
}

// CascadeEligible reports whether node is the root or a child of a cascading
// node.
func CascadeEligible(node *form.Node) bool {
	parent := node.Parent()
	return parent == nil || parent.Cascade()
}

// HasGroups reports whether resolved selects anything: a non-empty list, or
// any sequence.
func HasGroups(resolved form.Groups) bool {
	switch resolved.Kind() {
	case form.KindSequence:
		return true
	case form.KindList, form.KindName:
		return resolved.Len() > 0
	default:
		return false
	}
}

func (v *Validator) notSynchronized(node *form.Node, marker constraint.Constraint) constraint.Violation {
	failure := node.TransformationFailure()
	template := node.InvalidMessage()
	params := node.InvalidMessageParameters()
	if failure != nil && strings.TrimSpace(failure.InvalidMessage) != "" {
		template = failure.InvalidMessage
	}
	if failure != nil && len(failure.InvalidMessageParameters) > 0 {
		if params == nil {
			params = make(map[string]string, len(failure.InvalidMessageParameters))
		}
		for key, value := range failure.InvalidMessageParameters {
			params[key] = value
		}
	}
	if params == nil {
		params = make(map[string]string, 1)
	}
	raw := node.RawInput()
	params[constraint.ParamValue] = v.formatValue(raw)

	violation := constraint.NewViolation(template, params, constraint.CodeNotSynchronized)
	violation.Path = node.Path()
	violation.InvalidValue = raw
	violation.Constraint = marker
	if failure != nil {
		violation.Cause = failure
	}
	return violation
}

func (v *Validator) extraFields(node *form.Node, marker constraint.Constraint) constraint.Violation {
	params := map[string]string{
		ParamExtraFields: v.joinNames(node.ExtraFields()),
	}
	violation := constraint.NewViolation(node.ExtraFieldsMessage(), params, constraint.CodeNoSuchField)
	violation.Path = node.Path()
	violation.InvalidValue = node.RawInput()
	violation.Constraint = marker
	return violation
}

// joinNames renders names as "a", "b", "c".
func (v *Validator) joinNames(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		quoted = append(quoted, `"`+v.clean(name)+`"`)
	}
	return strings.Join(quoted, ", ")
}

func (v *Validator) formatValue(raw any) string {
	if s, ok := raw.(string); ok {
		return constraint.FormatValue(v.clean(s))
	}
	return constraint.FormatValue(raw)
}

func (v *Validator) clean(s string) string {
	if v.sanitize == nil {
		return s
	}
	return v.sanitize(s)
}

func displayPath(n *form.Node) string {
	if path := n.Path(); path != "" {
		return path
	}
	return n.Name()
}
