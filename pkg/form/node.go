package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formvalidator/pkg/constraint"
)

// Default messages used when a node does not configure its own.
const (
	DefaultInvalidMessage     = "This value is not valid."
	DefaultExtraFieldsMessage = "This form should not contain extra fields."
)

var (
	// ErrNotCompound is returned when extra fields are recorded on a leaf.
	ErrNotCompound = errors.New("form: extra fields can only be recorded on compound nodes")
	// ErrHasParent is returned when adding a node that already belongs to a tree.
	ErrHasParent = errors.New("form: node already has a parent")
	// ErrDuplicateChild is returned when a child name is reused.
	ErrDuplicateChild = errors.New("form: duplicate child name")
	// ErrUnknownButton is returned when clicking a button the node does not own.
	ErrUnknownButton = errors.New("form: unknown button")
)

// Transformer converts a submitted raw value into the node's data.
type Transformer func(raw any) (any, error)

// TransformationError records why a raw value could not be converted. It may
// override the node's invalid message and parameters.
type TransformationError struct {
	Message                  string
	InvalidMessage           string
	InvalidMessageParameters map[string]string
	Err                      error
}

func (e *TransformationError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "transformation failed"
	}
}

func (e *TransformationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Node is one field or fieldset of a submitted form.
type Node struct {
	name               string
	compound           bool
	cascade            bool
	constraints        []constraint.Grouped
	groups             Groups
	allowExtra         bool
	extraFieldsMessage string
	invalidMessage     string
	invalidParams      map[string]string
	transformer        Transformer

	parent   *Node
	children []*Node
	buttons  []*Button
	clicked  *Button

	raw        any
	data       any
	failure    *TransformationError
	extraNames []string
	extraData  map[string]any
}

// New constructs a node. Options that add children or buttons panic on
// structural errors since those indicate a broken form definition.
func New(name string, options ...Option) *Node {
	n := &Node{
		name:               strings.TrimSpace(name),
		extraFieldsMessage: DefaultExtraFieldsMessage,
		invalidMessage:     DefaultInvalidMessage,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(n)
	}
	return n
}

// Add attaches child and marks n as compound.
func (n *Node) Add(child *Node) error {
	if child == nil {
		return nil
	}
	if child.parent != nil {
		return fmt.Errorf("%w: %q", ErrHasParent, child.name)
	}
	if n.Child(child.name) != nil {
		return fmt.Errorf("%w: %q under %q", ErrDuplicateChild, child.name, n.name)
	}
	child.parent = n
	n.children = append(n.children, child)
	n.compound = true
	return nil
}

// AddButton attaches a submit button to n.
func (n *Node) AddButton(b *Button) error {
	if b == nil {
		return nil
	}
	if b.parent != nil {
		return fmt.Errorf("%w: button %q", ErrHasParent, b.name)
	}
	if n.Button(b.name) != nil {
		return fmt.Errorf("%w: button %q under %q", ErrDuplicateChild, b.name, n.name)
	}
	b.parent = n
	n.buttons = append(n.buttons, b)
	return nil
}

func (n *Node) Name() string { return n.name }

// Compound reports whether the node holds children.
func (n *Node) Compound() bool { return n.compound }

// Cascade reports whether validation cascades into the node's children.
func (n *Node) Cascade() bool { return n.cascade }

// Constraints returns the explicit constraints in declaration order.
func (n *Node) Constraints() []constraint.Grouped {
	if len(n.constraints) == 0 {
		return nil
	}
	return append([]constraint.Grouped(nil), n.constraints...)
}

// ValidationGroups returns the node's own group spec, if configured.
func (n *Node) ValidationGroups() (Groups, bool) {
	return n.groups, n.groups.IsSet()
}

func (n *Node) AllowsExtraFields() bool { return n.allowExtra }

func (n *Node) ExtraFieldsMessage() string { return n.extraFieldsMessage }

func (n *Node) InvalidMessage() string { return n.invalidMessage }

// InvalidMessageParameters returns a copy of the configured parameters.
func (n *Node) InvalidMessageParameters() map[string]string {
	return cloneParams(n.invalidParams)
}

// Transformer returns the raw-to-data transformer, or nil.
func (n *Node) Transformer() Transformer { return n.transformer }

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool { return n.parent == nil }

// Root walks to the top of the tree.
func (n *Node) Root() *Node {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Children returns the child nodes in insertion order.
func (n *Node) Children() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	return append([]*Node(nil), n.children...)
}

// Child returns the child named name, or nil.
func (n *Node) Child(name string) *Node {
	for _, child := range n.children {
		if child.name == name {
			return child
		}
	}
	return nil
}

// Buttons returns the buttons attached to n.
func (n *Node) Buttons() []*Button {
	if len(n.buttons) == 0 {
		return nil
	}
	return append([]*Button(nil), n.buttons...)
}

// Button returns the button named name, or nil.
func (n *Node) Button(name string) *Button {
	for _, b := range n.buttons {
		if b.name == name {
			return b
		}
	}
	return nil
}

// Path returns the dotted path from the root, excluding the root's name. The
// root's path is empty.
func (n *Node) Path() string {
	if n.parent == nil {
		return ""
	}
	var segments []string
	for cur := n; cur.parent != nil; cur = cur.parent {
		segments = append(segments, cur.name)
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, ".")
}

// Click records b as the button used to submit the tree rooted at n. The
// button must belong to n or one of its descendants.
func (n *Node) Click(b *Button) error {
	if b == nil {
		n.clicked = nil
		return nil
	}
	for owner := b.parent; owner != nil; owner = owner.parent {
		if owner == n {
			n.clicked = b
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not part of %q", ErrUnknownButton, b.name, n.name)
}

// ClickedButton returns the button clicked on n or, failing that, on the
// nearest ancestor.
func (n *Node) ClickedButton() *Button {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.clicked != nil {
			return cur.clicked
		}
	}
	return nil
}

// SetRawInput stores the submitted raw value.
func (n *Node) SetRawInput(raw any) { n.raw = raw }

// RawInput returns the submitted raw value. For compound nodes this is the
// full submitted mapping.
func (n *Node) RawInput() any { return n.raw }

// SetData stores the bound data.
func (n *Node) SetData(data any) { n.data = data }

// Data returns the bound data.
func (n *Node) Data() any { return n.data }

// MarkNotSynchronized records a transformation failure. Only the first call
// has an effect; it reports whether the failure was recorded.
func (n *Node) MarkNotSynchronized(failure *TransformationError) bool {
	if n.failure != nil {
		return false
	}
	if failure == nil {
		failure = &TransformationError{}
	}
	n.failure = failure
	return true
}

// Synchronized reports whether the raw input was converted successfully.
func (n *Node) Synchronized() bool { return n.failure == nil }

// TransformationFailure returns the recorded failure, or nil.
func (n *Node) TransformationFailure() *TransformationError { return n.failure }

// AddExtraField records a submitted key that matches no child. Names keep
// their submission order; repeats are ignored.
func (n *Node) AddExtraField(name string, raw any) error {
	if !n.compound {
		return fmt.Errorf("%w: %q", ErrNotCompound, n.name)
	}
	if n.extraData == nil {
		n.extraData = make(map[string]any)
	}
	if _, exists := n.extraData[name]; exists {
		return nil
	}
	n.extraNames = append(n.extraNames, name)
	n.extraData[name] = raw
	return nil
}

// ExtraFields returns the extra field names in submission order.
func (n *Node) ExtraFields() []string {
	if len(n.extraNames) == 0 {
		return nil
	}
	return append([]string(nil), n.extraNames...)
}

// ExtraData returns the raw values of the extra fields.
func (n *Node) ExtraData() map[string]any {
	if len(n.extraData) == 0 {
		return nil
	}
	out := make(map[string]any, len(n.extraData))
	for key, value := range n.extraData {
		out[key] = value
	}
	return out
}

// Walk visits n and its descendants depth-first in child order. Returning
// false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || fn == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.children {
		child.Walk(fn)
	}
}

func cloneParams(params map[string]string) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for key, value := range params {
		out[key] = value
	}
	return out
}
