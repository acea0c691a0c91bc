package grammar

import "fmt"

// A grammar is a heterogeneous bundle: a product of named fields whose
// values are all wrapped by the same functor (parsers while defining,
// memoized result lists while parsing, parse reports after extraction).
// Go has no higher-kinded abstraction, so the natural transformations the
// bundle operations take are erased to func(name, field any) any; typed
// access is recovered by the non-terminal handles of this package.

// Bundle is the capability to treat a fixed set of named fields uniformly.
// The three operations correspond to mapping under a natural
// transformation, folding into an accumulator, and traversing with an
// error-producing transformation.
type Bundle interface {
	// MapFields applies eta to every field and returns a bundle of the
	// same shape.
	MapFields(eta func(name string, field any) any) Bundle
	// FoldFields folds every field into the accumulator, in field order.
	FoldFields(acc any, combine func(acc any, name string, field any) any) any
	// TraverseFields applies eta to every field, short-circuiting on the
	// first error.
	TraverseFields(eta func(name string, field any) (any, error)) (Bundle, error)
}

// Record is an ordered, name-indexed Bundle implementation. The Grammar
// builder assembles one; clients with hand-written composite types may
// implement Bundle themselves instead.
type Record struct {
	names  []string
	fields []any
	index  map[string]int
}

var _ Bundle = (*Record)(nil)

// NewRecord creates an empty record bundle.
func NewRecord() *Record {
	return &Record{index: make(map[string]int)}
}

// Append adds a named field at the end of the record. It returns the
// field's index. Field names must be unique within a record.
func (r *Record) Append(name string, field any) int {
	if _, ok := r.index[name]; ok {
		panic(fmt.Sprintf("grammar: duplicate bundle field %q", name))
	}
	r.index[name] = len(r.fields)
	r.names = append(r.names, name)
	r.fields = append(r.fields, field)
	return len(r.fields) - 1
}

// Size returns the number of fields.
func (r *Record) Size() int {
	return len(r.fields)
}

// Names returns the field names in declaration order.
func (r *Record) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// At returns the field at the given index.
func (r *Record) At(i int) any {
	return r.fields[i]
}

// Field returns the field with the given name.
func (r *Record) Field(name string) (any, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.fields[i], true
}

// MapFields is part of the Bundle interface.
func (r *Record) MapFields(eta func(name string, field any) any) Bundle {
	mapped := r.shape()
	for i, f := range r.fields {
		mapped.fields[i] = eta(r.names[i], f)
	}
	return mapped
}

// FoldFields is part of the Bundle interface.
func (r *Record) FoldFields(acc any, combine func(acc any, name string, field any) any) any {
	for i, f := range r.fields {
		acc = combine(acc, r.names[i], f)
	}
	return acc
}

// TraverseFields is part of the Bundle interface.
func (r *Record) TraverseFields(eta func(name string, field any) (any, error)) (Bundle, error) {
	mapped := r.shape()
	for i, f := range r.fields {
		g, err := eta(r.names[i], f)
		if err != nil {
			return nil, err
		}
		mapped.fields[i] = g
	}
	return mapped, nil
}

// shape creates a record sharing r's names and index (they are not
// copied), with fresh fields to be filled in.
func (r *Record) shape() *Record {
	clone := &Record{
		names:  r.names,
		fields: make([]any, len(r.fields)),
		index:  r.index,
	}
	return clone
}
