package bind

import (
	"errors"
	"fmt"
	"reflect"

	"memberlink/backend"
	"memberlink/member"
)

var (
	ErrNoTargets    = errors.New("hierarchy has no targets to take the root type from")
	ErrDynamicType  = errors.New("member type is an interface and cannot be resolved by path")
	ErrBrokenResult = errors.New("resolved handle has a broken owner chain")
)

// Resolve walks path from the type of the first target of h and returns the
// handle of the last segment. Intermediate handles are created on h as well.
func Resolve(h *member.Hierarchy, path string, opts ...member.GetOption) (member.Handle, error) {
	p, err := ParsePath(path)
	if err != nil {
		return member.NoParent, err
	}

	targets := h.Targets()
	if len(targets) == 0 {
		return member.NoParent, ErrNoTargets
	}

	cur := reflect.TypeOf(targets[0])
	parent := member.NoParent

	for i, seg := range p.Segments {
		last := i == len(p.Segments)-1

		f, err := Field(cur, seg.Name)
		if err != nil {
			return member.NoParent, err
		}

		parent, cur, err = step(h, parent, f, seg.Kind == SegmentField && last, opts)
		if err != nil {
			return member.NoParent, err
		}

		var b backend.Backend
		switch seg.Kind {
		case SegmentField:
			continue
		case SegmentIndex:
			b, err = Element(cur, seg.Index)
		case SegmentKey:
			b, err = MapKey(cur, seg.Key)
		case SegmentSize:
			b, err = Resizer(cur)
		}

		if err != nil {
			return member.NoParent, fmt.Errorf("%s: %w", seg, err)
		}

		parent, cur, err = step(h, parent, b, last, opts)
		if err != nil {
			return member.NoParent, err
		}
	}

	return parent, nil
}

func step(h *member.Hierarchy, parent member.Handle, b backend.Backend, last bool, opts []member.GetOption) (member.Handle, reflect.Type, error) {
	var hd member.Handle
	if last {
		hd = h.Get(parent, b, opts...)
	} else {
		hd = h.Get(parent, b)
	}

	if hd.OwnerKind() == member.OwnerBroken {
		return member.NoParent, nil, fmt.Errorf("%w: %s", ErrBrokenResult, hd)
	}

	next := b.DeclaredType().Reflect()
	if !last && (next == nil || next.Kind() == reflect.Interface) {
		return member.NoParent, nil, fmt.Errorf("%w: %s", ErrDynamicType, hd)
	}

	return hd, next, nil
}
