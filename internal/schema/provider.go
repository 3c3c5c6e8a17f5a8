package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"derive-generator/internal/common"
)

// ErrTypeNotFound is returned when a type reference matches no known type.
var ErrTypeNotFound = errors.New("type not found")

// Provider supplies source type schemas by reference. A reference is either
// fully qualified ("derive-generator/store.Order"), package-qualified with a
// path suffix ("store.Order"), or a bare type name ("Order").
//
// Implementations must be safe for concurrent use and must not hand out
// schemas that are mutated afterwards.
type Provider interface {
	Lookup(ref string) (*TypeSchema, error)
}

// Index is an in-memory Provider keyed by TypeSchema.ID.
// It is read-only once populated.
type Index struct {
	types map[string]*TypeSchema
}

// NewIndex creates an Index holding the given schemas. Later schemas with the
// same ID replace earlier ones.
func NewIndex(schemas ...*TypeSchema) *Index {
	idx := &Index{types: make(map[string]*TypeSchema, len(schemas))}
	for _, s := range schemas {
		idx.Add(s)
	}

	return idx
}

// Add registers a schema. It must not be called once lookups have started.
func (x *Index) Add(s *TypeSchema) {
	if s == nil {
		return
	}

	x.types[s.ID()] = s
}

// Len returns the number of registered schemas.
func (x *Index) Len() int {
	return len(x.types)
}

// Lookup resolves ref against the registered schemas.
func (x *Index) Lookup(ref string) (*TypeSchema, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty type reference: %w", ErrTypeNotFound)
	}

	// 1) exact match
	if s, ok := x.types[ref]; ok {
		return s, nil
	}

	// 2) suffix or name-only match
	pkg, name := common.SplitTypeRef(ref)

	var matches []string
	for id, s := range x.types {
		if s.Name != name {
			continue
		}

		if pkg == "" || common.MatchesPkg(s.Namespace, pkg) || s.Package == pkg && !strings.Contains(pkg, "/") {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%q: %w", ref, ErrTypeNotFound)
	case 1:
		return x.types[matches[0]], nil
	default:
		sort.Strings(matches)
		return nil, fmt.Errorf("ambiguous type reference %q matches %s", ref, strings.Join(matches, ", "))
	}
}

// Chain is a Provider that consults each provider in turn and returns the
// first schema found. Errors other than ErrTypeNotFound stop the search.
type Chain []Provider

// Lookup implements Provider.
func (c Chain) Lookup(ref string) (*TypeSchema, error) {
	for _, p := range c {
		if p == nil {
			continue
		}

		s, err := p.Lookup(ref)
		if err == nil {
			return s, nil
		}

		if !errors.Is(err, ErrTypeNotFound) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%q: %w", ref, ErrTypeNotFound)
}

// ViewProvider wraps a Provider so that every schema is returned as seen from
// package From (see TypeSchema.ViewedFrom).
type ViewProvider struct {
	Provider Provider
	From     string
}

// Lookup implements Provider.
func (v ViewProvider) Lookup(ref string) (*TypeSchema, error) {
	s, err := v.Provider.Lookup(ref)
	if err != nil {
		return nil, err
	}

	return s.ViewedFrom(v.From), nil
}
