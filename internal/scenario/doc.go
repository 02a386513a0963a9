// Package scenario runs scripted sessions against a member context.
//
// A scenario file declares named targets with their initial values and a list
// of steps. Targets are plain records (map[string]any) and members are record
// keys, reached through indexer backends:
//
//	name: count sync
//	targets:
//	  - name: A
//	    values: {count: 3}
//	  - name: B
//	    values: {count: 3}
//	steps:
//	  - poke: {target: B, member: count, value: 5}
//	  - advance: 500ms
//	  - expect: {member: count, mixed: true}
//	  - set: {member: count, value: 7}
//	  - expect: {member: count, values: [7, 7], mixed: false}
//	  - undo: true
//	  - expect: {member: count, values: [3, 5]}
//
// Steps act on every target unless they name a subset with targets. The
// clock only moves on advance steps, so mixed-content caching is observable.
package scenario
