// Package orchestrator wires the build, bind and validate pipeline: a form
// tree is built from a stored definition or an OpenAPI operation, the
// submission is bound onto it and the engine runs one validation pass.
package orchestrator
