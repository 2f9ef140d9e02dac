package types

import "path/filepath"

// Category is one of the four top-level chest folders. The category a
// resource lives under decides which instance kinds may receive it and
// whether it participates in chest-to-chest syncing.
type Category string

const (
	// CategoryGlobal entries are eligible for every instance kind.
	CategoryGlobal Category = "global"

	// CategoryClientOnly entries are placed only into client instances.
	CategoryClientOnly Category = "client-only"

	// CategoryServerOnly entries are placed only into server instances.
	CategoryServerOnly Category = "server-only"

	// CategoryLocalOnly entries are placed locally (any kind) but are
	// excluded from the sync transfer set entirely.
	CategoryLocalOnly Category = "local-only"
)

// Categories returns all chest categories in their fixed on-disk order.
func Categories() []Category {
	return []Category{
		CategoryGlobal,
		CategoryClientOnly,
		CategoryServerOnly,
		CategoryLocalOnly,
	}
}

// ParseCategory maps a folder name to a Category.
func ParseCategory(name string) (Category, bool) {
	switch Category(name) {
	case CategoryGlobal, CategoryClientOnly, CategoryServerOnly, CategoryLocalOnly:
		return Category(name), true
	}
	return "", false
}

// Synced reports whether entries under this category are part of the
// chest-to-chest transfer set. Only local-only is held back.
func (c Category) Synced() bool {
	return c != CategoryLocalOnly
}

// EligibleFor reports whether entries under this category may be placed
// into an instance of the given kind.
func (c Category) EligibleFor(kind InstanceKind) bool {
	switch c {
	case CategoryGlobal, CategoryLocalOnly:
		return true
	case CategoryClientOnly:
		return kind == KindClient
	case CategoryServerOnly:
		return kind == KindServer
	}
	return false
}

// InstanceKind distinguishes client and server installations.
type InstanceKind string

const (
	KindClient InstanceKind = "client"
	KindServer InstanceKind = "server"
)

// ParseInstanceKind maps a string to an InstanceKind.
func ParseInstanceKind(s string) (InstanceKind, bool) {
	switch InstanceKind(s) {
	case KindClient, KindServer:
		return InstanceKind(s), true
	}
	return "", false
}

// Instance is an independently rooted installation that receives placed
// links. Instances are enumerated externally (inventory file); the core
// never discovers them on its own.
type Instance struct {
	Name string
	Root string
	Kind InstanceKind
}

// Entry is one parsed chest resource: a file or symlink whose name may
// carry @tag suffixes addressing it to instances. Entries are parsed once
// at the scan boundary; everything downstream operates on this value.
type Entry struct {
	// SourcePath is the absolute on-disk path of the resource.
	SourcePath string

	// Category is the chest folder the resource lives under.
	Category Category

	// RelPath is the path relative to the category folder with the tag
	// suffix stripped from the final component. This is where the placed
	// link appears inside an instance.
	RelPath string

	// Tags are the instance names addressed by the entry, in name order,
	// deduplicated. An empty set means the entry addresses no instance
	// unless the broadcast policy is enabled.
	Tags []string
}

// HasTag reports whether the entry addresses the named instance.
func (e Entry) HasTag(name string) bool {
	for _, tag := range e.Tags {
		if tag == name {
			return true
		}
	}
	return false
}

// LinkSpec is one required placed link: a symlink at RelPath inside an
// instance root pointing at Source in the chest.
type LinkSpec struct {
	RelPath string
	Source  string
}

// LinkPath returns the absolute path of the placed link inside the
// instance.
func (s LinkSpec) LinkPath(instanceRoot string) string {
	return filepath.Join(instanceRoot, filepath.FromSlash(s.RelPath))
}

// Delta is the reconciliation plan for a single instance: links that must
// be created or repointed, managed links that are no longer required, and
// links already in the desired state.
type Delta struct {
	Instance Instance

	ToCreate  []LinkSpec
	ToRemove  []string // absolute link paths
	Unchanged []LinkSpec
}

// Empty reports whether applying the delta would change anything.
func (d Delta) Empty() bool {
	return len(d.ToCreate) == 0 && len(d.ToRemove) == 0
}

// Conflict records two entries competing for the same placement slot. The
// winner is the lexicographically last source path; the loser's link is
// never created.
type Conflict struct {
	Instance string
	RelPath  string
	Winner   string
	Loser    string
}
