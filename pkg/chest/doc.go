// Package chest owns the on-disk pool: parsing tag-suffixed resource
// names, scanning the four category folders into structured entries, and
// bootstrapping a fresh chest.
//
// Names are parsed exactly once, at the scan boundary. Everything
// downstream operates on types.Entry values and never inspects file name
// strings again.
package chest
