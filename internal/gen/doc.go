// Package gen renders resolved schemas as Go source.
//
// Emit turns one derive.ResolvedSchema into declaration blocks:
//   - a struct type with one field per member
//   - accessor methods for exported get-only members
//   - a constructor taking one value per distinct source
//   - a Validate method when members are mandatory
//
// Generator assembles the blocks into a file per target using text/template
// and go/format.
package gen
