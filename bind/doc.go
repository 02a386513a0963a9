// Package bind builds member backends from Go types with reflection, and
// resolves dotted member paths into handle chains.
//
// Paths use the syntax:
//
//	Name            exported field
//	Address.Street  nested field
//	Items[2]        element 2 of a slice or array field
//	Items[#]        size of a slice field
//	Attrs[speed]    value of key "speed" in a map field
//
// Backends built here are ordinary backend values, so handles resolved from
// a path are cached and compared like hand-built ones.
package bind
