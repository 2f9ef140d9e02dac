// Package types defines the core value types shared across enderchest:
// categories, resource entries, instances, placement deltas and outcomes,
// and the filesystem interface used by everything that touches disk.
//
// These are plain values. All placement state is derived: a placed link can
// always be recomputed from the chest contents, so nothing in an instance
// tree is ever treated as a source of truth.
package types
