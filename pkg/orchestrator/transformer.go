package orchestrator

import (
	"context"

	"github.com/goliatone/go-formvalidator/pkg/form"
)

// Transformer mutates a freshly built form tree before the submission is
// bound. Implementations can attach constraints, buttons or group specs that
// a static definition cannot express, such as form.Func callbacks.
type Transformer interface {
	Transform(ctx context.Context, root *form.Node) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, root *form.Node) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, root *form.Node) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, root)
}
