// Package undo records writes made through member handles and replays them.
//
// A Log attaches itself to a member.Context as its write recorder. Every write
// that changes at least one target is handed to the Log before it is applied;
// the Log stores the values before and after together with a serialized
// descriptor of the handle, so that the handle can be rebuilt after its
// hierarchy is gone.
//
// Handles mirrored into an external store are not recorded here: the store
// keeps their history itself.
//
// The position of the Log is also kept in a PositionStore. A host whose own
// undo system can move that position calls Log.Update, which replays the one
// implied step.
package undo
