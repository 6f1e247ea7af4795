// Package shape resolves JSON Schema documents into array shapes.
//
// A shape is a tree of primitives, names, arrays and records:
//
//	array{name:string,tags:array<string>,address:array{street:string}}
//
// References are followed through a [schema.Registry]. Each path from the
// root carries the set of references it has followed, and a reference
// already on the path is rendered as a name rather than expanded again.
// The set is per path: the same target reached through two siblings is
// expanded under both.
//
// References which cannot be found resolve to the undefined primitive and
// are logged. Neither cycles nor missing references are errors.
package shape
