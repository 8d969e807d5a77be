package groups

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/goliatone/go-formvalidator/pkg/constraint"
	"github.com/goliatone/go-formvalidator/pkg/form"
)

// ErrMalformed marks group specs that cannot be resolved. It signals a bug in
// the form definition rather than bad user input.
var ErrMalformed = errors.New("groups: malformed validation groups")

// Source describes where an effective spec came from.
type Source string

const (
	SourceButton    Source = "button"
	SourceSelf      Source = "self"
	SourceInherited Source = "inherited"
	SourceDefault   Source = "default"
)

// Resolution explains a resolved spec.
type Resolution struct {
	Path   string
	Groups form.Groups
	Source Source
	// Origin is the path of the node (or the name of the button) that defined
	// the spec. Empty for the default.
	Origin string
}

var (
	nodeType   = reflect.TypeOf((*form.Node)(nil))
	groupsType = reflect.TypeOf(form.Groups{})
	namesType  = reflect.TypeOf([]string(nil))
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
)

// Resolve collapses the effective group spec of n into a list or a sequence.
func Resolve(n *form.Node) (form.Groups, error) {
	res, err := Explain(n)
	if err != nil {
		return form.Groups{}, err
	}
	return res.Groups, nil
}

// Explain resolves n and reports where the spec came from.
func Explain(n *form.Node) (Resolution, error) {
	if n == nil {
		return Resolution{}, errors.New("groups: node is nil")
	}
	spec, source, origin := Effective(n)
	resolved, err := resolveSpec(spec, n)
	if err != nil {
		return Resolution{}, fmt.Errorf("groups: resolve %q: %w", displayPath(n), err)
	}
	return Resolution{
		Path:   n.Path(),
		Groups: resolved,
		Source: source,
		Origin: origin,
	}, nil
}

// Effective returns the unresolved spec that applies to n.
func Effective(n *form.Node) (form.Groups, Source, string) {
	if b := n.ClickedButton(); b != nil {
		if spec, ok := b.ValidationGroups(); ok {
			return spec, SourceButton, b.Name()
		}
	}
	if spec, ok := n.ValidationGroups(); ok {
		return spec, SourceSelf, n.Path()
	}
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if spec, ok := cur.ValidationGroups(); ok {
			return spec, SourceInherited, cur.Path()
		}
	}
	return form.List(constraint.DefaultGroup), SourceDefault, ""
}

// All resolves every node of the tree rooted at root, depth-first.
func All(root *form.Node) ([]Resolution, error) {
	var (
		out      []Resolution
		firstErr error
	)
	root.Walk(func(n *form.Node) bool {
		if firstErr != nil {
			return false
		}
		res, err := Explain(n)
		if err != nil {
			firstErr = err
			return false
		}
		out = append(out, res)
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func resolveSpec(spec form.Groups, n *form.Node) (form.Groups, error) {
	switch spec.Kind() {
	case form.KindList, form.KindSequence:
		return spec, nil
	case form.KindName:
		return form.List(spec.Names()...), nil
	case form.KindFunc:
		fn := spec.Func()
		if fn == nil {
			return form.Groups{}, fmt.Errorf("%w: func spec without a function", ErrMalformed)
		}
		out, err := fn(n)
		if err != nil {
			return form.Groups{}, err
		}
		return asList(out, "func")
	case form.KindMethod:
		return invokeMethod(spec, n)
	default:
		return form.Groups{}, fmt.Errorf("%w: spec is not configured", ErrMalformed)
	}
}

func asList(out form.Groups, origin string) (form.Groups, error) {
	switch out.Kind() {
	case form.KindList:
		return out, nil
	case form.KindName:
		return form.List(out.Names()...), nil
	default:
		return form.Groups{}, fmt.Errorf("%w: %s returned a %s spec, want a list", ErrMalformed, origin, out.Kind())
	}
}

// invokeMethod supports methods shaped func(*form.Node) R or
// func(*form.Node) (R, error) where R is form.Groups or []string.
func invokeMethod(spec form.Groups, n *form.Node) (form.Groups, error) {
	receiver := spec.Receiver()
	name := spec.MethodName()
	if receiver == nil || name == "" {
		return form.Groups{}, fmt.Errorf("%w: method spec needs a receiver and a method name", ErrMalformed)
	}
	method := reflect.ValueOf(receiver).MethodByName(name)
	if !method.IsValid() {
		return form.Groups{}, fmt.Errorf("%w: %T has no exported method %q", ErrMalformed, receiver, name)
	}
	mt := method.Type()
	if mt.NumIn() != 1 || mt.In(0) != nodeType {
		return form.Groups{}, fmt.Errorf("%w: %T.%s must accept a single *form.Node", ErrMalformed, receiver, name)
	}
	switch {
	case mt.NumOut() == 1:
	case mt.NumOut() == 2 && mt.Out(1) == errorType:
	default:
		return form.Groups{}, fmt.Errorf("%w: %T.%s must return groups and an optional error", ErrMalformed, receiver, name)
	}

	origin := fmt.Sprintf("%T.%s", receiver, name)
	results := method.Call([]reflect.Value{reflect.ValueOf(n)})
	if len(results) == 2 && !results[1].IsNil() {
		return form.Groups{}, results[1].Interface().(error)
	}

	switch results[0].Type() {
	case groupsType:
		return asList(results[0].Interface().(form.Groups), origin)
	case namesType:
		return form.List(results[0].Interface().([]string)...), nil
	default:
		return form.Groups{}, fmt.Errorf("%w: %s returned %s, want form.Groups or []string", ErrMalformed, origin, results[0].Type())
	}
}

func displayPath(n *form.Node) string {
	if path := n.Path(); path != "" {
		return path
	}
	return n.Name()
}
