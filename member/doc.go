// Package member links member paths of one or more targets to uniform handles.
//
// A Context owns every shared table: the hierarchies keyed by target set, the
// backend catalog used to rebuild serialized handles and the generic argument
// table. Create one Context at startup and pass it around.
//
// # Hierarchies
//
// A Hierarchy serves one target set: an ordered, deduplicated list of target
// instances. Context.GetOrCreate returns the same Hierarchy for the same
// identities in the same order. Handles are created through Hierarchy.Get,
// which caches them by parent and member.
//
//	ctx := member.NewContext()
//	h := ctx.GetOrCreate(a, b)
//	count := h.Root(countField)
//	count.SetValue(7)          // writes a and b
//	mixed := count.MixedContent()
//
// # Owner chains
//
// Each handle is rooted on a target, rooted on a static context, or chained
// through a parent handle whose value is its owner. A handle whose chain
// cannot be established is Broken for the rest of its life: it reads its
// declared-type default and ignores writes.
//
// When the parent's declared type has value semantics (a struct or array read
// by copy), writes go into the copy and the copy is written back through the
// parent, recursively, until a reference owner is reached.
//
// # Concurrency
//
// Nothing here is safe for concurrent use. All calls are expected from one
// goroutine, between frames of the host loop that calls Context.Tick.
package member
