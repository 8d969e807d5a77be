// Package groups resolves the validation groups that apply to a form node.
//
// Resolution order: the clicked submit button's groups (when the button
// defines any), then the node's own groups, then the nearest ancestor's, and
// finally the single "Default" group. Closures and method references are
// invoked with the node under validation and must produce a static list.
// Resolution is pure; calling Resolve twice on an unchanged tree yields the
// same result.
package groups
