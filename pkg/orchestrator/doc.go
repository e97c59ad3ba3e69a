// Package orchestrator wires the data loader → renderer → output writer
// pipeline behind a single Generate call, with dependency injection friendly
// options for callers that need to swap a stage.
package orchestrator
