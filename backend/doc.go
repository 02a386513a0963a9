// Package backend implements the member kinds a handle can be backed by.
//
// A Backend knows how to read and write one member given an owner instance:
// a field, a property, a method result, an indexer, a collection element, the
// size of a collection, a method parameter or a generic type argument. The set
// of kinds is closed: Backend is sealed and every consumer switches over Kind.
//
// Backends never inspect types on their own. Callers describe capabilities with
// spec structs (FieldSpec, PropertySpec, ...): a nil getter means the member is
// not readable, a nil setter means it is not writable.
//
// # Owners
//
// GetValue receives the owner and returns the member value. SetValue receives
// the owner and returns the owner after the write. For owners with reference
// semantics (pointers, maps) the returned owner is the same instance; for
// owners with value semantics (structs, arrays) it is the updated copy, which
// the caller has to store back wherever the owner came from.
//
// # Failures
//
// No Backend lets a panic escape. Failures of the underlying accessors are
// returned as *InvocationError, conversion failures as *CastError and
// collection index failures as *IndexError; reads return the declared-type
// default alongside the error and writes return the original owner.
//
// # Catalog
//
// Every backend has a Descriptor whose Key identifies the member it accesses.
// A Catalog maps keys back to backends so that serialized handles can be
// reconstructed later.
package backend
