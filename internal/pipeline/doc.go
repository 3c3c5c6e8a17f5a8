// Package pipeline resolves many derivation targets concurrently.
//
// Each target is handled by one worker from request parsing to the resolved
// schema, with no state shared between targets other than the read-only
// schema provider. Results keep the order of the input annotations.
package pipeline
