package validator

import (
	"context"

	"github.com/goliatone/go-formvalidator/pkg/constraint"
	"github.com/goliatone/go-formvalidator/pkg/form"
)

type call struct {
	Kind       string
	Data       any
	Groups     string
	Constraint string
	Group      string
}

// recorder captures execution context traffic in order.
type recorder struct {
	calls      []call
	violations constraint.List
	err        error
}

func (r *recorder) ValidateImplicit(_ context.Context, data any, groups form.Groups) error {
	r.calls = append(r.calls, call{Kind: "implicit", Data: data, Groups: groups.String()})
	return r.err
}

func (r *recorder) ValidateExplicit(_ context.Context, data any, c constraint.Constraint, group string) error {
	r.calls = append(r.calls, call{Kind: "explicit", Data: data, Constraint: c.Name(), Group: group})
	return r.err
}

func (r *recorder) AddViolation(v constraint.Violation) {
	r.violations.Add(v)
}

type namedConstraint string

func (c namedConstraint) Name() string { return string(c) }
