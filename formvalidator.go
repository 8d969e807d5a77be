// Package formvalidator validates submitted form trees. It resolves the
// validation groups that apply to every node, dispatches implicit and explicit
// constraint checks to an execution engine, and reports inputs that could not
// be converted or fields the form does not know about.
//
// Quick start:
//
//	v := formvalidator.New(formvalidator.WithDefinitionFS(os.DirFS("forms")))
//	result, err := v.Validate(ctx, formvalidator.Request{
//		FormID:        "registration",
//		RawSubmission: body,
//	})
package formvalidator

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formvalidator/pkg/openapi"
	"github.com/goliatone/go-formvalidator/pkg/orchestrator"
)

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// Result aliases orchestrator.Result.
type Result = orchestrator.Result

// Option aliases orchestrator.Option.
type Option = orchestrator.Option

// New exposes the orchestrator constructor from the top-level module.
func New(options ...Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// WithDefinitionFS loads form definitions from fsys.
func WithDefinitionFS(fsys fs.FS) Option {
	return orchestrator.WithDefinitionFS(fsys)
}

// NewLoader constructs an OpenAPI loader.
func NewLoader(options ...openapi.LoaderOption) *openapi.Loader {
	return openapi.NewLoader(options...)
}

// ValidateDefinition validates a raw submission against a stored form.
func ValidateDefinition(ctx context.Context, fsys fs.FS, formID string, submission []byte, options ...Option) (Result, error) {
	v := orchestrator.New(append([]Option{orchestrator.WithDefinitionFS(fsys)}, options...)...)
	return v.Validate(ctx, Request{FormID: formID, RawSubmission: submission})
}

// ValidateOperation validates a raw submission against the request body of an
// OpenAPI operation.
func ValidateOperation(ctx context.Context, source openapi.Source, operationID string, submission []byte, options ...Option) (Result, error) {
	v := orchestrator.New(options...)
	return v.Validate(ctx, Request{Source: source, OperationID: operationID, RawSubmission: submission})
}
