// Package derive resolves derivation requests into resolved schemas.
//
// A Request names a target type and one of exactly four strategies:
//
//   - Select: copy an explicit, ordered list of members from one source
//   - Union: merge the members of several sources, first seen wins
//   - Readonly: project every member of one source as get-only
//   - Required: project the public members of one source as mandatory
//
// Resolve dispatches on the strategy and returns the resolved schema together
// with the diagnostics raised on the way. Resolution is a pure function of the
// request and the capabilities: it keeps no state between calls and never
// modifies the source schemas.
package derive
