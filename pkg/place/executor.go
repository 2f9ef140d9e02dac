package place

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/enderchest/pkg/errors"
	"github.com/arthur-debert/enderchest/pkg/logging"
	"github.com/arthur-debert/enderchest/pkg/types"
)

// Apply reconciles one instance against its delta. Every entry is an
// isolated unit of work: a failure is recorded in its outcome and the
// rest of the delta still runs. Re-running Apply on an already reconciled
// instance yields unchanged outcomes for every entry.
func Apply(fsys types.FS, chestDir string, delta types.Delta) types.Report {
	logger := logging.GetLogger("place.executor").With().
		Str("instance", delta.Instance.Name).Logger()

	report := types.Report{Instance: delta.Instance.Name}

	for _, spec := range delta.ToCreate {
		report.Outcomes = append(report.Outcomes, createLink(fsys, chestDir, delta.Instance.Root, spec))
	}

	for _, linkPath := range delta.ToRemove {
		outcome := types.LinkOutcome{Path: linkPath, Status: types.StatusRemoved}
		if err := fsys.Remove(linkPath); err != nil {
			outcome.Status = types.StatusFailed
			outcome.Err = errors.Wrapf(err, errors.ErrFileAccess, "cannot remove stale link %s", linkPath)
		} else {
			logger.Info().Str("link", linkPath).Msg("removed stale link")
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	for _, spec := range delta.Unchanged {
		report.Outcomes = append(report.Outcomes, types.LinkOutcome{
			Path:   spec.LinkPath(delta.Instance.Root),
			Status: types.StatusUnchanged,
		})
	}

	logger.Debug().
		Int("created", report.Count(types.StatusCreated)).
		Int("replaced", report.Count(types.StatusReplaced)).
		Int("removed", report.Count(types.StatusRemoved)).
		Int("unchanged", report.Count(types.StatusUnchanged)).
		Int("skipped", report.Count(types.StatusSkippedRealFile)).
		Int("failed", report.Count(types.StatusFailed)).
		Msg("instance reconciled")

	return report
}

// ApplyAll reconciles every delta. Instance subtrees are disjoint, so the
// deltas are applied concurrently; reports come back in delta order.
func ApplyAll(fsys types.FS, chestDir string, deltas []types.Delta) []types.Report {
	reports := make([]types.Report, len(deltas))
	var wg sync.WaitGroup
	for i, delta := range deltas {
		wg.Add(1)
		go func(i int, delta types.Delta) {
			defer wg.Done()
			reports[i] = Apply(fsys, chestDir, delta)
		}(i, delta)
	}
	wg.Wait()
	return reports
}

// createLink places one symlink, replacing only links this system owns.
// A slot occupied by a regular file, a directory, or a symlink pointing
// outside the chest is never touched: that is a ConflictsWithRealFile
// outcome, skipped and reported.
func createLink(fsys types.FS, chestDir, instanceRoot string, spec types.LinkSpec) types.LinkOutcome {
	logger := logging.GetLogger("place.executor")
	linkPath := spec.LinkPath(instanceRoot)
	outcome := types.LinkOutcome{Path: linkPath}

	info, err := fsys.Lstat(linkPath)
	switch {
	case err == nil && info.Mode()&fs.ModeSymlink == 0:
		outcome.Status = types.StatusSkippedRealFile
		outcome.Err = errors.Newf(errors.ErrRealFileConflict,
			"%s exists and is not a managed link", linkPath)
		return outcome

	case err == nil:
		target, readErr := fsys.Readlink(linkPath)
		if readErr != nil {
			outcome.Status = types.StatusFailed
			outcome.Err = errors.Wrapf(readErr, errors.ErrFileAccess, "cannot inspect %s", linkPath)
			return outcome
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(linkPath), target)
		}
		target = filepath.Clean(target)
		if target == spec.Source {
			outcome.Status = types.StatusUnchanged
			return outcome
		}
		if !pathWithin(chestDir, target) {
			outcome.Status = types.StatusSkippedRealFile
			outcome.Err = errors.Newf(errors.ErrRealFileConflict,
				"%s is a symlink to %s, which this chest does not manage", linkPath, target)
			return outcome
		}
		if removeErr := fsys.Remove(linkPath); removeErr != nil {
			outcome.Status = types.StatusFailed
			outcome.Err = errors.Wrapf(removeErr, errors.ErrFileAccess, "cannot replace %s", linkPath)
			return outcome
		}
		if linkErr := fsys.Symlink(spec.Source, linkPath); linkErr != nil {
			outcome.Status = types.StatusFailed
			outcome.Err = errors.Wrapf(linkErr, errors.ErrSymlinkCreate, "cannot link %s", linkPath)
			return outcome
		}
		logger.Info().Str("link", linkPath).Str("source", spec.Source).Msg("repointed link")
		outcome.Status = types.StatusReplaced
		return outcome

	case os.IsNotExist(err):
		if mkErr := fsys.MkdirAll(filepath.Dir(linkPath), 0755); mkErr != nil {
			outcome.Status = types.StatusFailed
			outcome.Err = errors.Wrapf(mkErr, errors.ErrDirCreate, "cannot create parent for %s", linkPath)
			return outcome
		}
		if linkErr := fsys.Symlink(spec.Source, linkPath); linkErr != nil {
			outcome.Status = types.StatusFailed
			outcome.Err = errors.Wrapf(linkErr, errors.ErrSymlinkCreate, "cannot link %s", linkPath)
			return outcome
		}
		logger.Info().Str("link", linkPath).Str("source", spec.Source).Msg("created link")
		outcome.Status = types.StatusCreated
		return outcome

	default:
		outcome.Status = types.StatusFailed
		outcome.Err = errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", linkPath)
		return outcome
	}
}
