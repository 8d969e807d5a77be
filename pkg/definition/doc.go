// Package definition loads form definitions from JSON, YAML or TOML files and
// builds fresh form trees from them, one per submission.
//
// A document holds a "forms" table keyed by form id. Each form (and each
// nested field) may declare a type, cascade, validation groups or a group
// sequence, explicit constraints bound to groups, submit buttons with their
// own groups, the extra fields policy and the messages used for synthesized
// violations.
package definition
