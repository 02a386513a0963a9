package member

// Store is the optional external persisted-property store of one target set.
// A handle created with WithStorePath mirrors into the property the store
// finds for that path; its history is then recorded by the store itself.
type Store interface {
	// FindProperty returns the property at a path relative to the targets.
	FindProperty(path string) (StoreProperty, error)
	// RecordUndo records an undoable change of targets in the store's own
	// history and reports whether the targets should be marked modified.
	RecordUndo(targets []any, description string, fullSnapshot bool) bool
}

// StoreProperty is a property reference obtained from a Store.
type StoreProperty interface {
	Path() string
}

// StoreFactory builds the Store of a target set. It is only called when all
// targets share one concrete type.
type StoreFactory func(targets []any) (Store, error)

// Validator receives the post-change validation signal of a target.
type Validator interface {
	ValueChanged(target any)
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(target any)

func (f ValidatorFunc) ValueChanged(target any) {
	f(target)
}

// ChangeObserver is implemented by targets that want the validation signal themselves.
type ChangeObserver interface {
	OnValidate()
}

// Modifiable is implemented by targets that track unsaved changes. It is
// called for every written target when the Recorder reports the write as a
// modification.
type Modifiable interface {
	MarkModified()
}

// Validity is implemented by targets that can become invalid, such as
// destroyed host objects. Invalid targets dispose their hierarchies on Sweep.
type Validity interface {
	IsValid() bool
}

// Write describes one write about to be applied, handed to the Recorder
// before any target changes.
type Write struct {
	// Targets are the targets that change, in hierarchy order.
	Targets []any
	Handle  Handle
	// Indexes are the positions of Targets in the handle's hierarchy.
	// Empty for static members.
	Indexes []int
	// To holds the new value per changing target, or one value for static members.
	To          []any
	Description string
	// FullSnapshot asks an external store to snapshot the whole targets.
	FullSnapshot bool
}

// Static reports whether the write targets a static member.
func (w Write) Static() bool {
	return len(w.Indexes) == 0
}

// Recorder registers writes in a history. It reports whether the changing
// targets should be marked modified.
type Recorder interface {
	RegisterWrite(w Write) bool
}
