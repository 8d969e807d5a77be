// Package form models the submitted form tree the validator inspects. A Node
// is built once per submission, mutated while data is bound (raw input,
// transformed data, synchronization state, extra fields, clicked button), and
// then handed read-only to the validator. Parent links are navigation only.
//
// Validation groups are described by the Groups tagged union: a static List,
// an ordered Sequence, a bare Name, a Func closure of the node, or a Method
// reference invoked on a receiver. Group names are plain strings and are never
// looked up as functions.
package form
