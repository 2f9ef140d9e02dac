package place

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/enderchest/pkg/logging"
	"github.com/arthur-debert/enderchest/pkg/types"
)

// Policy holds the placement decisions that are configuration, not code.
type Policy struct {
	// UntaggedBroadcast makes entries with no tags apply to every
	// instance their category is eligible for. Off by default: an
	// untagged entry addresses no instance, so a freshly synced chest
	// cannot surprise-blanket every installation. Never applies to
	// local-only, whose untagged files (config, generated scripts) are
	// plain machine-local data.
	UntaggedBroadcast bool
}

// Resolution is the outcome of resolving the chest against the known
// instances: one delta per instance plus any placement conflicts.
type Resolution struct {
	Deltas    []types.Delta
	Conflicts []types.Conflict
}

// Resolve computes, for every instance, the set of placed links it must
// carry and the delta against the links currently present in its tree.
//
// Two entries mapping to the same (instance, relative path) slot are a
// conflict, resolved deterministically: entries are processed in
// lexicographic source-path order and the last one wins. The loser's link
// is never created.
func Resolve(fsys types.FS, chestDir string, entries []types.Entry, instances []types.Instance, policy Policy) (*Resolution, error) {
	logger := logging.GetLogger("place.resolver")

	sorted := make([]types.Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SourcePath < sorted[j].SourcePath
	})

	resolution := &Resolution{}
	for _, instance := range instances {
		required := map[string]string{} // relPath -> source
		for _, entry := range sorted {
			if !addresses(entry, instance, policy) {
				continue
			}
			if prev, taken := required[entry.RelPath]; taken && prev != entry.SourcePath {
				conflict := types.Conflict{
					Instance: instance.Name,
					RelPath:  entry.RelPath,
					Winner:   entry.SourcePath,
					Loser:    prev,
				}
				resolution.Conflicts = append(resolution.Conflicts, conflict)
				logger.Warn().
					Str("instance", instance.Name).
					Str("path", entry.RelPath).
					Str("winner", conflict.Winner).
					Str("loser", conflict.Loser).
					Msg("placement conflict, last entry wins")
			}
			required[entry.RelPath] = entry.SourcePath
		}

		current, err := managedLinks(fsys, instance.Root, chestDir)
		if err != nil {
			return nil, err
		}

		delta := types.Delta{Instance: instance}
		for relPath, source := range required {
			spec := types.LinkSpec{RelPath: relPath, Source: source}
			if current[spec.LinkPath(instance.Root)] == source {
				delta.Unchanged = append(delta.Unchanged, spec)
			} else {
				delta.ToCreate = append(delta.ToCreate, spec)
			}
		}
		for linkPath := range current {
			relPath, err := filepath.Rel(instance.Root, linkPath)
			if err != nil {
				continue
			}
			if _, wanted := required[filepath.ToSlash(relPath)]; !wanted {
				delta.ToRemove = append(delta.ToRemove, linkPath)
			}
		}

		sort.Slice(delta.ToCreate, func(i, j int) bool {
			return delta.ToCreate[i].RelPath < delta.ToCreate[j].RelPath
		})
		sort.Slice(delta.Unchanged, func(i, j int) bool {
			return delta.Unchanged[i].RelPath < delta.Unchanged[j].RelPath
		})
		sort.Strings(delta.ToRemove)

		resolution.Deltas = append(resolution.Deltas, delta)
	}

	return resolution, nil
}

// addresses reports whether the entry is destined for the instance.
func addresses(entry types.Entry, instance types.Instance, policy Policy) bool {
	if !entry.Category.EligibleFor(instance.Kind) {
		return false
	}
	if len(entry.Tags) == 0 {
		return policy.UntaggedBroadcast && entry.Category != types.CategoryLocalOnly
	}
	return entry.HasTag(instance.Name)
}

// managedLinks walks an instance tree and returns every symlink whose
// target resolves inside the chest. Those links, and only those, are
// derived state this system owns; anything else in the instance is left
// alone. The map goes from absolute link path to resolved target.
func managedLinks(fsys types.FS, instanceRoot, chestDir string) (map[string]string, error) {
	found := map[string]string{}
	if _, err := fsys.Stat(instanceRoot); err != nil {
		// A not-yet-created instance simply has no links.
		return found, nil
	}
	err := walkLinks(fsys, instanceRoot, chestDir, found)
	return found, err
}

func walkLinks(fsys types.FS, dir, chestDir string, found map[string]string) error {
	listing, err := fsys.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, dirEntry := range listing {
		child := filepath.Join(dir, dirEntry.Name())
		if dirEntry.IsDir() {
			// Real directory (a symlinked directory reports as a
			// symlink here, not a dir, so we never walk through one).
			if err := walkLinks(fsys, child, chestDir, found); err != nil {
				return err
			}
			continue
		}
		if dirEntry.Type()&fs.ModeSymlink == 0 {
			continue
		}
		target, err := fsys.Readlink(child)
		if err != nil {
			continue
		}
		resolved := target
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(dir, resolved)
		}
		resolved = filepath.Clean(resolved)
		if pathWithin(chestDir, resolved) {
			found[child] = resolved
		}
	}
	return nil
}

// pathWithin reports whether path lies under root.
func pathWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
