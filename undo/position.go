package undo

// PositionStore persists the number of applied entries of a Log.
type PositionStore interface {
	Position() int
	SetPosition(pos int)
}

// MemoryPosition is a PositionStore kept in memory.
type MemoryPosition struct {
	pos int
}

func (m *MemoryPosition) Position() int       { return m.pos }
func (m *MemoryPosition) SetPosition(pos int) { m.pos = pos }
