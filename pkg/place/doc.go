// Package place computes and applies placement deltas: which symlinks
// each instance must carry for the chest's current contents, and the
// create/remove operations needed to get there.
//
// Placed links are derived state. The resolver recomputes the full target
// set on every run and diffs it against the links actually present, so a
// resource deleted upstream (for example by a sync pull) loses its placed
// links on the next reconciliation. The executor applies each delta entry
// in isolation; failures are collected per entry and reconciliation is
// idempotent, which is also the crash-recovery story.
package place
