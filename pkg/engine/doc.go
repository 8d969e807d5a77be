// Package engine is a small constraint engine that drives the form validator
// over a whole tree. It implements validator.ExecutionContext for one pass:
// implicit constraints come from data implementing constraint.Provider,
// explicit constraints are evaluated through constraint.Checker, and every
// violation lands in one ordered list. After a node is validated the engine
// re-enters the validator for each child when the node cascades.
package engine
