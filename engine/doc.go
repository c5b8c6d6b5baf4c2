// Package engine implements dotted-path access over nested containers.
//
// A container is a tree of dynamic values: sequences ([]any), mappings
// (*Map, which keeps insertion order, or map[string]any) and scalars. A path
// such as "users.2.name" names one node in that tree; numeric segments index
// sequences and every other segment is a mapping key.
//
// Two cooperating pieces live here:
//
//   - Paths, the single-path engine: Parse, Get, Set, Delete and Exists.
//     Get never creates structure, Set always does, Delete never does.
//   - Batch, built on any PathEngine: GetMulti over a Group of paths with
//     derived output keys and positional defaults, SetMulti, DeleteMulti,
//     ExistsAll and ExistsAny.
//
// Output keys for GetMulti come from an explicit key, else the last path
// segment, else the entry position. A key already used in the same batch gets
// "_<n>" appended, where n is the entry position:
//
//	users.2.name, users.3.name, users.4.name  ->  name, name_1, name_2
//
// Nothing in this package is safe for concurrent mutation of the same
// container; callers own the locking.
package engine
