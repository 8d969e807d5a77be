package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-formvalidator/pkg/constraint"
	"github.com/goliatone/go-formvalidator/pkg/form"
	"github.com/goliatone/go-formvalidator/pkg/groups"
	"github.com/goliatone/go-formvalidator/pkg/validator"
)

// ErrUncheckable is returned for explicit constraints that do not implement
// constraint.Checker.
var ErrUncheckable = errors.New("engine: constraint cannot be checked")

// Observer is notified after each node's decision.
type Observer func(node *form.Node, outcome validator.Outcome)

// Option customises the engine.
type Option func(*Engine)

// WithValidator replaces the form validator.
func WithValidator(v *validator.Validator) Option {
	return func(e *Engine) {
		if v != nil {
			e.validator = v
		}
	}
}

// WithMarker sets the constraint synthesized violations are attributed to.
func WithMarker(marker constraint.Constraint) Option {
	return func(e *Engine) {
		if marker != nil {
			e.marker = marker
		}
	}
}

// WithLogger routes engine logs to logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObserver registers a callback invoked after each node's decision.
func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

// Engine validates form trees.
type Engine struct {
	validator *validator.Validator
	marker    constraint.Constraint
	logger    *log.Logger
	observer  Observer
}

// New constructs an Engine with a default validator and the form marker.
func New(options ...Option) *Engine {
	e := &Engine{
		marker: validator.FormConstraint{},
		logger: log.New(io.Discard),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.validator == nil {
		e.validator = validator.New(validator.WithLogger(e.logger))
	}
	return e
}

// Validate runs a single pass over the tree rooted at root and returns the
// violations in the order they were raised. Explicit constraints of nodes
// governed by a group sequence are checked once the tree has been walked,
// one sequence group at a time across every node sharing that sequence.
func (e *Engine) Validate(ctx context.Context, root *form.Node) (constraint.List, error) {
	if root == nil {
		return nil, errors.New("engine: root is nil")
	}
	pass := &execution{engine: e, sequences: map[string]*sequence{}}
	if err := pass.visit(ctx, root); err != nil {
		return nil, err
	}
	for _, key := range pass.order {
		if err := pass.runSequence(ctx, pass.sequences[key]); err != nil {
			return nil, err
		}
	}
	e.logger.Debug("validation finished", "form", root.Name(), "violations", len(pass.violations))
	return pass.violations, nil
}

// pending is an explicit check waiting for its sequence group.
type pending struct {
	node  *form.Node
	c     constraint.Constraint
	data  any
	group string
}

// sequence collects the checks of every node resolving to the same group
// sequence definition.
type sequence struct {
	key     string
	groups  []string
	failed  map[string]bool
	pending []pending
}

// execution is the per-pass execution context.
type execution struct {
	engine     *Engine
	violations constraint.List

	current    *form.Node
	resolution *groups.Resolution
	dispatched []constraint.Constraint

	sequences map[string]*sequence
	order     []string
}

var _ validator.ExecutionContext = (*execution)(nil)

func (x *execution) visit(ctx context.Context, node *form.Node) error {
	x.current = node
	x.resolution = nil
	x.dispatched = nil
	outcome, err := x.engine.validator.Validate(ctx, x, node, x.engine.marker)
	if err != nil {
		return err
	}
	if x.engine.observer != nil {
		x.engine.observer(node, outcome)
	}
	// children of a node whose input could not be mapped carry no submission
	if !node.Cascade() || outcome == validator.OutcomeNotSynchronized {
		return nil
	}
	for _, child := range node.Children() {
		if err := x.visit(ctx, child); err != nil {
			return err
		}
	}
	return nil
}

// ValidateImplicit checks the constraints data declares for the resolved
// groups. Lists validate every matching declaration in declaration order;
// sequences stop after the first group that raised violations.
func (x *execution) ValidateImplicit(ctx context.Context, data any, resolved form.Groups) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	provider, ok := data.(constraint.Provider)
	if !ok {
		return nil
	}
	declared := provider.ValidationConstraints()
	if len(declared) == 0 {
		return nil
	}

	if resolved.Kind() == form.KindSequence {
		seq, err := x.bucket()
		if err != nil {
			return err
		}
		for _, group := range resolved.Names() {
			before := len(x.violations)
			if err := x.checkDeclared(declared, data, map[string]struct{}{group: {}}); err != nil {
				return err
			}
			if len(x.violations) > before {
				seq.failed[group] = true
			}
			if seq.failed[group] {
				x.engine.logger.Debug("group sequence stopped", "group", group)
				break
			}
		}
		return nil
	}

	active := make(map[string]struct{}, resolved.Len())
	for _, group := range resolved.Names() {
		active[group] = struct{}{}
	}
	return x.checkDeclared(declared, data, active)
}

// ValidateExplicit checks a single constraint under group. The constraint is
// skipped when group is not active for the current node, or when the same
// constraint was already dispatched under an earlier active group.
func (x *execution) ValidateExplicit(ctx context.Context, data any, c constraint.Constraint, group string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := x.resolve()
	if err != nil {
		return err
	}
	if selected := firstActiveGroup(res.Groups.Names(), x.current.Constraints(), c, group); selected != group {
		x.engine.logger.Debug("explicit constraint skipped", "constraint", c.Name(), "group", group, "active", selected)
		return nil
	}
	for _, seen := range x.dispatched {
		if sameConstraint(seen, c) {
			return nil
		}
	}
	x.dispatched = append(x.dispatched, c)

	if res.Groups.Kind() == form.KindSequence {
		seq, err := x.bucket()
		if err != nil {
			return err
		}
		seq.pending = append(seq.pending, pending{node: x.current, c: c, data: data, group: group})
		return nil
	}
	x.engine.logger.Debug("explicit constraint", "constraint", c.Name(), "group", group)
	return x.check(x.current, c, data)
}

func (x *execution) AddViolation(v constraint.Violation) {
	x.violations.Add(v)
}

func (x *execution) resolve() (*groups.Resolution, error) {
	if x.resolution != nil {
		return x.resolution, nil
	}
	res, err := groups.Explain(x.current)
	if err != nil {
		return nil, err
	}
	x.resolution = &res
	return x.resolution, nil
}

// bucket returns the sequence shared by every node whose sequence was
// defined by the same node or button as the current one.
func (x *execution) bucket() (*sequence, error) {
	res, err := x.resolve()
	if err != nil {
		return nil, err
	}
	key := "node:" + res.Origin
	if res.Source == groups.SourceButton {
		key = "button:" + res.Origin
	}
	if seq, ok := x.sequences[key]; ok {
		return seq, nil
	}
	seq := &sequence{key: key, groups: res.Groups.Names(), failed: map[string]bool{}}
	x.sequences[key] = seq
	x.order = append(x.order, key)
	return seq, nil
}

func (x *execution) runSequence(ctx context.Context, seq *sequence) error {
	for _, group := range seq.groups {
		if err := ctx.Err(); err != nil {
			return err
		}
		failed := seq.failed[group]
		before := len(x.violations)
		for _, p := range seq.pending {
			if p.group != group {
				continue
			}
			x.engine.logger.Debug("explicit constraint", "constraint", p.c.Name(), "group", group, "sequence", seq.key)
			if err := x.check(p.node, p.c, p.data); err != nil {
				return err
			}
		}
		if failed || len(x.violations) > before {
			x.engine.logger.Debug("group sequence stopped", "sequence", seq.key, "group", group)
			return nil
		}
	}
	return nil
}

func (x *execution) checkDeclared(declared []constraint.Grouped, data any, active map[string]struct{}) error {
	var done []constraint.Constraint
	for _, grouped := range declared {
		if _, ok := active[grouped.Group]; !ok {
			continue
		}
		if containsConstraint(done, grouped.Constraint) {
			continue
		}
		done = append(done, grouped.Constraint)
		if err := x.check(x.current, grouped.Constraint, data); err != nil {
			return err
		}
	}
	return nil
}

func (x *execution) check(node *form.Node, c constraint.Constraint, data any) error {
	checker, ok := c.(constraint.Checker)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUncheckable, c.Name())
	}
	for _, v := range checker.Check(data) {
		v.Path = node.Path()
		v.InvalidValue = data
		v.Constraint = c
		x.violations.Add(v)
	}
	return nil
}

// firstActiveGroup returns the earliest of active that c is bound to on the
// node, or "" when none is.
func firstActiveGroup(active []string, declared []constraint.Grouped, c constraint.Constraint, group string) string {
	bound := map[string]struct{}{group: {}}
	for _, grouped := range declared {
		if sameConstraint(grouped.Constraint, c) {
			bound[grouped.Group] = struct{}{}
		}
	}
	for _, name := range active {
		if _, ok := bound[name]; ok {
			return name
		}
	}
	return ""
}

func containsConstraint(list []constraint.Constraint, c constraint.Constraint) bool {
	for _, seen := range list {
		if sameConstraint(seen, c) {
			return true
		}
	}
	return false
}

// sameConstraint compares comparable constraints with == and falls back to a
// deep comparison for values holding slices or maps.
func sameConstraint(a, b constraint.Constraint) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil || ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
