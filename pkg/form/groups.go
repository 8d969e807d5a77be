package form

import (
	"fmt"
	"strings"
)

// GroupsKind tags the Groups variant.
type GroupsKind uint8

const (
	kindUnset GroupsKind = iota
	// KindList is an ordered, duplicate-free set of group names.
	KindList
	// KindSequence is an ordered group sequence; later groups are evaluated
	// only when earlier groups produced no violations.
	KindSequence
	// KindName is a single group name.
	KindName
	// KindFunc is a closure invoked with the node under validation.
	KindFunc
	// KindMethod is a method invoked by name on a receiver with the node.
	KindMethod
)

func (k GroupsKind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindSequence:
		return "sequence"
	case KindName:
		return "name"
	case KindFunc:
		return "func"
	case KindMethod:
		return "method"
	default:
		return "unset"
	}
}

// GroupsFunc computes groups from the node being validated.
type GroupsFunc func(*Node) (Groups, error)

// Groups is the validation group spec attached to nodes and buttons.
// The zero value means "not configured".
type Groups struct {
	kind     GroupsKind
	names    []string
	fn       GroupsFunc
	receiver any
	method   string
}

// List returns a static group list. Duplicate names are dropped, keeping the
// first occurrence. List() with no names is a valid, empty list.
func List(names ...string) Groups {
	return Groups{kind: KindList, names: uniqueNames(names)}
}

// Sequence returns an ordered group sequence.
func Sequence(names ...string) Groups {
	return Groups{kind: KindSequence, names: uniqueNames(names)}
}

// Name returns a single group name. The name is only ever a group name.
func Name(name string) Groups {
	return Groups{kind: KindName, names: []string{name}}
}

// Func returns a closure-backed spec.
func Func(fn GroupsFunc) Groups {
	return Groups{kind: KindFunc, fn: fn}
}

// Method returns a spec resolved by invoking receiver.<method>(node).
func Method(receiver any, method string) Groups {
	return Groups{kind: KindMethod, receiver: receiver, method: strings.TrimSpace(method)}
}

// Kind reports the variant.
func (g Groups) Kind() GroupsKind { return g.kind }

// IsSet reports whether the spec was configured.
func (g Groups) IsSet() bool { return g.kind != kindUnset }

// Names returns a copy of the group names for list, sequence and name specs.
func (g Groups) Names() []string {
	if len(g.names) == 0 {
		return nil
	}
	return append([]string(nil), g.names...)
}

// Len reports the number of names for list, sequence and name specs.
func (g Groups) Len() int { return len(g.names) }

// Func returns the closure of a KindFunc spec.
func (g Groups) Func() GroupsFunc { return g.fn }

// Receiver returns the receiver of a KindMethod spec.
func (g Groups) Receiver() any { return g.receiver }

// MethodName returns the method name of a KindMethod spec.
func (g Groups) MethodName() string { return g.method }

// Equal reports whether two concrete specs (list, sequence, name) hold the same
// kind and names. Func and method specs are never equal.
func (g Groups) Equal(other Groups) bool {
	if g.kind != other.kind {
		return false
	}
	switch g.kind {
	case kindUnset:
		return true
	case KindFunc, KindMethod:
		return false
	}
	if len(g.names) != len(other.names) {
		return false
	}
	for i := range g.names {
		if g.names[i] != other.names[i] {
			return false
		}
	}
	return true
}

func (g Groups) String() string {
	switch g.kind {
	case KindList:
		return "[" + strings.Join(g.names, ", ") + "]"
	case KindSequence:
		return "sequence(" + strings.Join(g.names, ", ") + ")"
	case KindName:
		return fmt.Sprintf("%q", g.names[0])
	case KindFunc:
		return "func"
	case KindMethod:
		return fmt.Sprintf("method(%T.%s)", g.receiver, g.method)
	default:
		return "unset"
	}
}

func uniqueNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
