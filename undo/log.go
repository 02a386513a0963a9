package undo

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"memberlink/internal/common"
	"memberlink/internal/diagnostic"
	"memberlink/member"
)

// Entry is one recorded write.
type Entry struct {
	ID uuid.UUID
	// Targets are the targets that changed.
	Targets []any
	// Descriptor is the encoded member.Descriptor of the written handle.
	Descriptor []byte
	// Before and After hold one value per target, or one value for static members.
	Before      []any
	After       []any
	Description string
	Static      bool
}

// Log is a bounded linear history of writes.
type Log struct {
	ctx       *member.Context
	entries   []Entry
	pos       int
	capacity  int
	disabled  int
	positions PositionStore
	prev      member.Recorder
}

// Option configures a Log.
type Option func(*Log)

// WithCapacity bounds the number of entries. Non-positive values keep the configured capacity.
func WithCapacity(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.capacity = n
		}
	}
}

// WithPositionStore keeps the position in store.
func WithPositionStore(store PositionStore) Option {
	return func(l *Log) {
		if store != nil {
			l.positions = store
		}
	}
}

// New creates a Log and installs it as the write recorder of ctx.
func New(ctx *member.Context, opts ...Option) *Log {
	l := &Log{
		ctx:       ctx,
		capacity:  ctx.Config().UndoCapacity,
		positions: &MemoryPosition{},
	}

	for _, opt := range opts {
		opt(l)
	}

	l.positions.SetPosition(0)
	l.prev = ctx.SetRecorder(l)

	return l
}

// Detach restores the recorder that was installed before the Log.
func (l *Log) Detach() {
	l.ctx.SetRecorder(l.prev)
	l.prev = nil
}

// RegisterWrite records w. It is called before the write is applied and
// reports whether the targets should be considered modified.
func (l *Log) RegisterWrite(w member.Write) bool {
	if l.disabled > 0 {
		return false
	}

	hd := w.Handle
	if hd.IsExternallyPersisted() {
		if h := hd.Hierarchy(); h != nil && h.Store() != nil {
			return h.Store().RecordUndo(w.Targets, w.Description, w.FullSnapshot)
		}
	}

	if !hd.IsUndoable() {
		return false
	}

	d, err := hd.Descriptor()
	if err == nil {
		var data []byte
		if data, err = member.EncodeDescriptor(d); err == nil {
			l.push(w, data)
			return true
		}
	}

	l.ctx.Reporter().Warn(diagnostic.CodeSerialization, err.Error(), hd.String(), "")

	return false
}

func (l *Log) push(w member.Write, data []byte) {
	before := w.Handle.GetValues()
	if !w.Static() {
		before = common.Pick(before, w.Indexes)
	}

	e := Entry{
		ID:          uuid.New(),
		Targets:     slices.Clone(w.Targets),
		Descriptor:  data,
		Before:      before,
		After:       slices.Clone(w.To),
		Description: w.Description,
		Static:      w.Static(),
	}

	l.entries = append(l.entries[:l.pos], e)
	if over := len(l.entries) - l.capacity; l.capacity > 0 && over > 0 {
		l.entries = slices.Delete(l.entries, 0, over)
	}

	l.pos = len(l.entries)
	l.positions.SetPosition(l.pos)
}

// Undo reverts the entry before the position. It reports whether the position moved.
func (l *Log) Undo() bool {
	if !l.stepBack() {
		return false
	}

	l.positions.SetPosition(l.pos)

	return true
}

// Redo reapplies the entry at the position. It reports whether the position moved.
func (l *Log) Redo() bool {
	if !l.stepForward() {
		return false
	}

	l.positions.SetPosition(l.pos)

	return true
}

// Update compares the persisted position with the position of the Log and
// replays one Undo or Redo when they differ. Call it once per host undo or
// redo event, or once per frame.
func (l *Log) Update() bool {
	switch p := l.positions.Position(); {
	case p < l.pos:
		return l.stepBack()
	case p > l.pos:
		return l.stepForward()
	default:
		return false
	}
}

// HostSignal tells the Log that the host ran its own undo or redo.
func (l *Log) HostSignal() bool {
	return l.Update()
}

func (l *Log) stepBack() bool {
	if l.pos == 0 {
		return false
	}

	l.pos--
	e := l.entries[l.pos]
	l.replay(e, e.Before)

	return true
}

func (l *Log) stepForward() bool {
	if l.pos >= len(l.entries) {
		return false
	}

	e := l.entries[l.pos]
	l.pos++
	l.replay(e, e.After)

	return true
}

// replay writes values through the handle of e with recording disabled.
// An entry whose handle cannot be rebuilt is skipped. A hierarchy created
// only for the replay is disposed afterwards.
func (l *Log) replay(e Entry, values []any) {
	l.disabled++
	defer func() { l.disabled-- }()

	d, err := member.DecodeDescriptor(e.Descriptor)
	if err != nil {
		l.skip(e, err)
		return
	}

	if _, ok := l.ctx.Lookup(e.Targets...); !ok && !e.Static {
		defer l.disposeScratch(e.Targets)
	}

	hd, err := l.ctx.Resolve(e.Targets, d)
	if err != nil {
		l.skip(e, err)
		return
	}

	if e.Static {
		if v, ok := common.First(values); ok {
			hd.SetValue(v)
		}

		return
	}

	hd.SetValues(values)
}

func (l *Log) disposeScratch(targets []any) {
	if h, ok := l.ctx.Lookup(targets...); ok {
		h.Dispose()
	}
}

func (l *Log) skip(e Entry, err error) {
	msg := fmt.Sprintf("skipping %q: %v", e.Description, err)
	l.ctx.Reporter().Info(diagnostic.CodeUndoReplay, msg, "", "")
}

// CanUndo reports whether an entry can be undone.
func (l *Log) CanUndo() bool { return l.pos > 0 }

// CanRedo reports whether an undone entry can be redone.
func (l *Log) CanRedo() bool { return l.pos < len(l.entries) }

// Len returns the number of entries.
func (l *Log) Len() int { return len(l.entries) }

// Position returns the number of applied entries.
func (l *Log) Position() int { return l.pos }

// Entries returns a copy of the entries, oldest first.
func (l *Log) Entries() []Entry { return slices.Clone(l.entries) }

// Clear drops every entry.
func (l *Log) Clear() {
	l.entries = nil
	l.pos = 0
	l.positions.SetPosition(0)
}
