package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-formvalidator/internal/binding"
	"github.com/goliatone/go-formvalidator/pkg/constraint"
	"github.com/goliatone/go-formvalidator/pkg/definition"
	"github.com/goliatone/go-formvalidator/pkg/engine"
	"github.com/goliatone/go-formvalidator/pkg/form"
	"github.com/goliatone/go-formvalidator/pkg/openapi"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithDefinitions injects a pre-loaded definition store.
func WithDefinitions(store *definition.Store) Option {
	return func(o *Orchestrator) {
		o.definitions = store
	}
}

// WithDefinitionFS loads definitions from fsys on first use.
func WithDefinitionFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.definitionFS = fsys
	}
}

// WithLoader injects the OpenAPI document loader.
func WithLoader(loader *openapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithEngine injects a custom validation engine.
func WithEngine(e *engine.Engine) Option {
	return func(o *Orchestrator) {
		o.engine = e
	}
}

// WithTransformer registers a Transformer that runs after the tree is built.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithLogger sets the logger used by the orchestrator and its default engine.
func WithLogger(logger *log.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates tree construction, binding and validation.
type Orchestrator struct {
	definitions     *definition.Store
	definitionFS    fs.FS
	loader          *openapi.Loader
	engine          *engine.Engine
	transformer     Transformer
	logger          *log.Logger
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{logger: log.New(io.Discard)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request selects the form and carries the submission.
type Request struct {
	// FormID names a stored definition. Ignored when OperationID is set.
	FormID string

	// Source locates an OpenAPI document. Document takes precedence.
	Source openapi.Source

	// Document is a raw OpenAPI payload.
	Document []byte

	// OperationID selects the OpenAPI operation whose request body forms the
	// tree.
	OperationID string

	// Submission is an already decoded submission (map[string]any or
	// *binding.Map). RawSubmission is decoded when Submission is nil.
	Submission    any
	RawSubmission []byte
}

// Result is the outcome of one validation pass.
type Result struct {
	Form       *form.Node
	Violations constraint.List
}

// Valid reports whether the pass raised no violations.
func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

// Build creates a fresh, unsubmitted form tree for req.
func (o *Orchestrator) Build(ctx context.Context, req Request) (*form.Node, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	var (
		root *form.Node
		err  error
	)
	switch {
	case req.OperationID != "":
		root, err = o.buildFromOpenAPI(ctx, req)
	case req.FormID != "":
		root, err = o.buildFromDefinition(req.FormID)
	default:
		return nil, errors.New("orchestrator: form id or operation id is required")
	}
	if err != nil {
		return nil, err
	}

	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, root); err != nil {
			return nil, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}
	return root, nil
}

// Validate builds the tree, binds the submission and runs one pass.
func (o *Orchestrator) Validate(ctx context.Context, req Request) (Result, error) {
	root, err := o.Build(ctx, req)
	if err != nil {
		return Result{}, err
	}

	submission := req.Submission
	if submission == nil && len(req.RawSubmission) > 0 {
		submission, err = binding.Decode(req.RawSubmission)
		if err != nil {
			return Result{}, fmt.Errorf("orchestrator: decode submission: %w", err)
		}
	}
	if err := binding.Submit(root, submission); err != nil {
		return Result{}, fmt.Errorf("orchestrator: bind submission: %w", err)
	}

	violations, err := o.engine.Validate(ctx, root)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: validate: %w", err)
	}
	o.logger.Debug("submission validated", "form", root.Name(), "violations", len(violations))
	return Result{Form: root, Violations: violations}, nil
}

// FormIDs lists the stored definitions.
func (o *Orchestrator) FormIDs() []string {
	return o.definitions.IDs()
}

func (o *Orchestrator) buildFromDefinition(id string) (*form.Node, error) {
	def, ok := o.definitions.Form(id)
	if !ok {
		return nil, fmt.Errorf("orchestrator: form %q not found", id)
	}
	root, err := def.Build()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build form: %w", err)
	}
	return root, nil
}

func (o *Orchestrator) buildFromOpenAPI(ctx context.Context, req Request) (*form.Node, error) {
	raw := req.Document
	if len(raw) == 0 {
		if req.Source == nil {
			return nil, errors.New("orchestrator: source or document is required")
		}
		loaded, err := o.loader.Load(ctx, req.Source)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load document: %w", err)
		}
		raw = loaded
	}
	root, err := openapi.BuildForm(ctx, raw, req.OperationID)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build form: %w", err)
	}
	return root, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}
	o.defaultsApplied = true

	if o.loader == nil {
		o.loader = openapi.NewLoader()
	}
	if o.engine == nil {
		o.engine = engine.New(engine.WithLogger(o.logger))
	}
	if o.definitions == nil {
		store, err := definition.LoadFS(o.definitionFS)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load definitions: %w", err)
			return
		}
		o.definitions = store
	}
}
