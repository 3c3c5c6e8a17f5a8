// Package diagnostic provides structured warnings and errors produced while
// deriving a type.
//
// Key capabilities:
//   - Missing member errors
//   - Duplicate member warnings and conflicts across merged sources
//   - Unsupported feature errors
//   - Ignored visibility warnings
//
// Diagnostics are accumulated as values in the order they were raised; the
// engine never reports them through side channels.
package diagnostic
