package chest

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/enderchest/pkg/errors"
	"github.com/arthur-debert/enderchest/pkg/logging"
	"github.com/arthur-debert/enderchest/pkg/paths"
	"github.com/arthur-debert/enderchest/pkg/types"
)

// ScanResult holds every well-formed entry found in the chest plus the
// malformed names that were skipped. A malformed name never aborts the
// scan.
type ScanResult struct {
	Entries   []types.Entry
	Malformed []error
}

// Exists reports whether a chest is present under the given root.
func Exists(fsys types.FS, p *paths.Paths) bool {
	info, err := fsys.Stat(p.ChestDir())
	return err == nil && info.IsDir()
}

// Scan walks the four category folders and parses every file and symlink
// into an Entry. Entries come back sorted by source path, which is the
// deterministic order conflict resolution relies on. The only fatal
// condition is an unreadable chest.
func Scan(fsys types.FS, p *paths.Paths) (*ScanResult, error) {
	logger := logging.GetLogger("chest.scan")

	if !Exists(fsys, p) {
		return nil, errors.Newf(errors.ErrChestNotFound,
			"no chest found at %s", p.ChestDir())
	}

	result := &ScanResult{}
	for _, category := range types.Categories() {
		dir := p.CategoryDir(category)
		if _, err := fsys.Stat(dir); err != nil {
			if os.IsNotExist(err) {
				logger.Debug().Str("category", string(category)).Msg("category folder missing, skipping")
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrChestAccess,
				"cannot read category folder %s", dir)
		}
		if err := scanDir(fsys, p.ChestDir(), string(category), result); err != nil {
			return nil, err
		}
	}

	sort.Slice(result.Entries, func(i, j int) bool {
		return result.Entries[i].SourcePath < result.Entries[j].SourcePath
	})

	logger.Debug().
		Int("entries", len(result.Entries)).
		Int("malformed", len(result.Malformed)).
		Msg("chest scan complete")
	return result, nil
}

// scanDir recurses into one chest subdirectory, collecting entries.
// rel is the chest-relative path of the directory being scanned.
func scanDir(fsys types.FS, chestDir, rel string, result *ScanResult) error {
	logger := logging.GetLogger("chest.scan")

	listing, err := fsys.ReadDir(filepath.Join(chestDir, rel))
	if err != nil {
		return errors.Wrapf(err, errors.ErrChestAccess, "cannot read %s", rel)
	}

	for _, dirEntry := range listing {
		childRel := filepath.Join(rel, dirEntry.Name())
		if dirEntry.IsDir() {
			if dirEntry.Name() == paths.VCSDirName {
				continue
			}
			if err := scanDir(fsys, chestDir, childRel, result); err != nil {
				return err
			}
			continue
		}

		entry, err := ParseEntry(chestDir, childRel)
		if err != nil {
			logger.Warn().Err(err).Str("path", childRel).Msg("skipping malformed entry")
			result.Malformed = append(result.Malformed, err)
			continue
		}
		result.Entries = append(result.Entries, entry)
	}
	return nil
}
