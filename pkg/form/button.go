package form

import "strings"

// Button is a submit button. When clicked, its validation groups override the
// groups of every node in the submitted tree.
type Button struct {
	name   string
	groups Groups
	parent *Node
}

// ButtonOption configures a Button.
type ButtonOption func(*Button)

// ButtonValidationGroups sets the groups applied when the button is clicked.
func ButtonValidationGroups(groups Groups) ButtonOption {
	return func(b *Button) {
		b.groups = groups
	}
}

// NewButton constructs a detached button.
func NewButton(name string, options ...ButtonOption) *Button {
	b := &Button{name: strings.TrimSpace(name)}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func (b *Button) Name() string { return b.name }

// Parent returns the node the button is attached to.
func (b *Button) Parent() *Node { return b.parent }

// ValidationGroups returns the button's own group spec, if configured.
func (b *Button) ValidationGroups() (Groups, bool) {
	return b.groups, b.groups.IsSet()
}
