package derive

import (
	"derive-generator/internal/diagnostic"
	"derive-generator/internal/schema"
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind enumerates the derivation strategies.
type Kind int

const (
	KindSelect   Kind = iota // pick
	KindUnion                // union
	KindReadonly             // readonly
	KindRequired             // required
)

// Target identifies the type being derived.
type Target struct {
	Name    string // type name, e.g. "OrderSummary"
	Package string // import path of the package the type is generated into
	PkgName string // package name, defaults to the last path element
}

// Request is a parsed derivation request for one target. It is built once by
// the request resolver and never modified afterwards.
type Request struct {
	Target   Target
	Location diagnostic.Location
	Strategy Strategy
}

// Strategy is the strategy-specific part of a Request. The set of
// implementations is closed: Select, Union, Readonly and Required.
type Strategy interface {
	Kind() Kind
	strategy()
}

// Select copies the named members of Source, in the order given.
type Select struct {
	Source     *schema.TypeSchema
	Properties []string
}

// Union merges the members of Sources. Repeated sources are ignored.
type Union struct {
	Sources []*schema.TypeSchema
}

// Readonly projects every member of Source as get-only.
type Readonly struct {
	Source *schema.TypeSchema
}

// Required projects the public members of Source as mandatory.
type Required struct {
	Source *schema.TypeSchema
}

func (Select) Kind() Kind   { return KindSelect }
func (Union) Kind() Kind    { return KindUnion }
func (Readonly) Kind() Kind { return KindReadonly }
func (Required) Kind() Kind { return KindRequired }

func (Select) strategy()   {}
func (Union) strategy()    {}
func (Readonly) strategy() {}
func (Required) strategy() {}

// MandatoryFieldsSince is the first Go release able to compile the checks
// generated for mandatory members.
const MandatoryFieldsSince = "go1.20"

// Capabilities describes what the target toolchain supports.
type Capabilities struct {
	// MandatoryFields reports whether mandatory members can be rendered.
	MandatoryFields bool
}
