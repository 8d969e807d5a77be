package form

import (
	"strings"

	"github.com/goliatone/go-formvalidator/pkg/constraint"
)

// Option configures a Node at construction.
type Option func(*Node)

// WithCompound marks the node as compound even before children are added.
func WithCompound() Option {
	return func(n *Node) {
		n.compound = true
	}
}

// WithCascade makes validation descend into the node's children.
func WithCascade() Option {
	return func(n *Node) {
		n.cascade = true
	}
}

// WithConstraints appends explicit constraints, keeping declaration order.
func WithConstraints(constraints ...constraint.Grouped) Option {
	return func(n *Node) {
		for _, c := range constraints {
			if c.Constraint == nil {
				continue
			}
			n.constraints = append(n.constraints, constraint.InGroup(c.Constraint, c.Group))
		}
	}
}

// WithConstraint appends c once per group (Default when none are given).
func WithConstraint(c constraint.Constraint, groups ...string) Option {
	return WithConstraints(constraint.InGroups(c, groups...)...)
}

// WithValidationGroups sets the node's own group spec.
func WithValidationGroups(groups Groups) Option {
	return func(n *Node) {
		n.groups = groups
	}
}

// WithAllowExtraFields controls whether unknown submitted keys are tolerated.
func WithAllowExtraFields(allow bool) Option {
	return func(n *Node) {
		n.allowExtra = allow
	}
}

// WithExtraFieldsMessage overrides the extra fields message template.
func WithExtraFieldsMessage(message string) Option {
	return func(n *Node) {
		if strings.TrimSpace(message) != "" {
			n.extraFieldsMessage = message
		}
	}
}

// WithInvalidMessage overrides the message used when the node is not
// synchronized.
func WithInvalidMessage(message string, params map[string]string) Option {
	return func(n *Node) {
		if strings.TrimSpace(message) != "" {
			n.invalidMessage = message
		}
		n.invalidParams = cloneParams(params)
	}
}

// WithTransformer sets the raw-to-data transformer.
func WithTransformer(t Transformer) Option {
	return func(n *Node) {
		n.transformer = t
	}
}

// WithData seeds the node's data.
func WithData(data any) Option {
	return func(n *Node) {
		n.data = data
	}
}

// WithChildren adds children in order. It panics on duplicate names or
// children that already belong to another tree.
func WithChildren(children ...*Node) Option {
	return func(n *Node) {
		for _, child := range children {
			if err := n.Add(child); err != nil {
				panic(err)
			}
		}
	}
}

// WithButtons attaches submit buttons. It panics on duplicate names.
func WithButtons(buttons ...*Button) Option {
	return func(n *Node) {
		for _, b := range buttons {
			if err := n.AddButton(b); err != nil {
				panic(err)
			}
		}
	}
}
