// Package schema defines the shape model the derivation engine works on.
//
// A TypeSchema is an immutable snapshot of a source type: its identity and its
// ordered members. Schemas come from a Provider; the engine never inspects Go
// packages or reflection metadata itself.
//
// Key types:
//   - TypeSchema: name, namespace (import path), package name, members
//   - Member: name, declared type, visibility, static/synthesized flags
//   - TypeExpr: a rendered type expression plus its canonical identity
//   - Provider: looks a type up by reference ("store.Order")
//
// Catalog filters a schema's members down to the candidates a strategy may use.
package schema
