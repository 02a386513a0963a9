package backend

import (
	"math"
	"reflect"

	"memberlink/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string `yaml:"pkg,omitempty"` // e.g., "memberlink/store"
	Name    string `yaml:"name"`          // e.g., "Order", or "[]int" for unnamed types
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Short returns the type name qualified by its package alias only.
func (t TypeID) Short() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return common.PkgAlias(t.PkgPath) + "." + t.Name
}

// IsZero reports whether the TypeID names no type.
func (t TypeID) IsZero() bool {
	return t.PkgPath == "" && t.Name == ""
}

// IDOf returns the TypeID of a reflect type. Unnamed types use their literal spelling.
func IDOf(rt reflect.Type) TypeID {
	if rt == nil {
		return TypeID{Name: "any"}
	}

	if rt.Name() == "" {
		return TypeID{Name: rt.String()}
	}

	return TypeID{PkgPath: rt.PkgPath(), Name: rt.Name()}
}

// TypeInfo describes the declared type of a member.
type TypeInfo struct {
	ID TypeID
	// Zero is the declared-type default returned by failed reads.
	Zero any
	// ValueSemantics is set for types whose instances are copied on read
	// (structs, arrays, basic types). Writing into such a copy is only visible
	// after the copy is stored back into its owner.
	ValueSemantics bool
	// FixedSize is set for collections that cannot be resized (arrays).
	FixedSize bool

	rtype reflect.Type
}

// TypeOf derives the TypeInfo of T.
func TypeOf[T any]() TypeInfo {
	return TypeFromReflect(reflect.TypeFor[T]())
}

// AnyType is the TypeInfo of members whose values are not constrained.
func AnyType() TypeInfo {
	return TypeInfo{ID: TypeID{Name: "any"}}
}

// TypeFromReflect derives the TypeInfo of a reflect type.
func TypeFromReflect(rt reflect.Type) TypeInfo {
	if rt == nil || rt.Kind() == reflect.Interface {
		info := AnyType()
		if rt != nil {
			info.ID = IDOf(rt)
			info.rtype = rt
		}

		return info
	}

	info := TypeInfo{
		ID:    IDOf(rt),
		Zero:  reflect.Zero(rt).Interface(),
		rtype: rt,
	}

	switch rt.Kind() {
	default:
		info.ValueSemantics = false
	case reflect.Struct:
		info.ValueSemantics = true
	case reflect.Array:
		info.ValueSemantics = true
		info.FixedSize = true
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		info.ValueSemantics = true
	}

	return info
}

// Reflect returns the underlying reflect type, or nil for unconstrained types.
func (t TypeInfo) Reflect() reflect.Type {
	return t.rtype
}

// Accepts reports whether v can be stored in a member of this type without conversion.
func (t TypeInfo) Accepts(v any) bool {
	if t.rtype == nil || t.rtype.Kind() == reflect.Interface && v == nil {
		return true
	}

	if v == nil {
		return nillable(t.rtype.Kind())
	}

	return reflect.TypeOf(v).AssignableTo(t.rtype)
}

// Coerce returns v as a value of this type. Values that are not assignable are
// converted once when both sides are numeric or share a kind; anything else fails.
// Numeric conversions must keep the value: 3.9 does not fit an int and 300
// does not fit an int8. Float to float conversions may round but not overflow.
func (t TypeInfo) Coerce(v any) (any, bool) {
	if t.Accepts(v) {
		if v == nil && t.rtype != nil && t.rtype.Kind() != reflect.Interface {
			return t.Zero, true
		}

		return v, true
	}

	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	from, to := rv.Kind(), t.rtype.Kind()
	if from != to && !(numeric(from) && numeric(to)) {
		return nil, false
	}

	if !rv.Type().ConvertibleTo(t.rtype) {
		return nil, false
	}

	out := rv.Convert(t.rtype)
	if numeric(from) && !lossless(rv, out) {
		return nil, false
	}

	return out.Interface(), true
}

// lossless reports whether the numeric conversion of in to out kept its value.
func lossless(in, out reflect.Value) bool {
	if floating(in.Kind()) && floating(out.Kind()) {
		f := in.Float()
		return math.IsNaN(f) || math.IsInf(f, 0) || !math.IsInf(out.Float(), 0)
	}

	if negative(in) != negative(out) {
		return false
	}

	return out.Convert(in.Type()).Equal(in)
}

func negative(v reflect.Value) bool {
	switch {
	case v.CanInt():
		return v.Int() < 0
	case v.CanFloat():
		return v.Float() < 0
	default:
		return false
	}
}

// Size2D is the size descriptor of two-dimensional collections.
type Size2D struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// Count returns the number of elements the size describes.
func (s Size2D) Count() int {
	if s.Rows < 0 || s.Cols < 0 {
		return 0
	}

	return s.Rows * s.Cols
}

// Size3D is the size descriptor of three-dimensional collections.
type Size3D struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
}

// Count returns the number of elements the size describes.
func (s Size3D) Count() int {
	if s.X < 0 || s.Y < 0 || s.Z < 0 {
		return 0
	}

	return s.X * s.Y * s.Z
}

func nillable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

func floating(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
