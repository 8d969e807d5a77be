// Package validator decides, for one form node, which validation runs and
// which violations are synthesized.
//
// The decision table, evaluated in order:
//
//  1. Nodes whose data is not validatable and that are not reached by a
//     cascade (neither the root nor a child of a cascading node) are skipped.
//  2. The node's groups are resolved (see package groups).
//  3. Nodes that are not synchronized get exactly one NOT_SYNCHRONIZED
//     violation and nothing else runs.
//  4. Structured data is validated against its implicit constraints when the
//     resolved groups are non-empty and the node is reached by a cascade.
//  5. Every explicit constraint is validated under its own group, in
//     declaration order, regardless of the implicit groups.
//  6. Compound nodes that received unknown fields and do not allow them get
//     one NO_SUCH_FIELD violation listing every name.
//
// Descending into children is the execution context's job; Validate handles a
// single node per call.
package validator
