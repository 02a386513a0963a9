package backend

import (
	"errors"
	"fmt"
)

var (
	ErrNotReadable  = errors.New("member is not readable")
	ErrNotWritable  = errors.New("member is not writable")
	ErrNilOwner     = errors.New("owner is nil")
	ErrSizeMismatch = errors.New("collection element count does not match the requested size")
	ErrNegativeSize = errors.New("collection size must not be negative")
)

// InvocationError reports a failure of the accessor behind a member.
type InvocationError struct {
	Member string
	Op     string // "get" or "set"
	Err    error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Member, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// CastError reports a value that cannot be stored in a member.
type CastError struct {
	Member string
	Want   TypeID
	Got    string
}

func (e *CastError) Error() string {
	return fmt.Sprintf("set %s: cannot use %s as %s", e.Member, e.Got, e.Want)
}

// IndexError reports a collection index outside of the collection.
type IndexError struct {
	Member string
	Index  int
	Len    int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0:%d]", e.Member, e.Index, e.Len)
}

// invoke runs fn and turns a panic into an error.
func invoke(fn func() (any, error)) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return fn()
}
