package place

import (
	"github.com/arthur-debert/enderchest/pkg/chest"
	"github.com/arthur-debert/enderchest/pkg/logging"
	"github.com/arthur-debert/enderchest/pkg/paths"
	"github.com/arthur-debert/enderchest/pkg/types"
)

// Result is the outcome of a full reconciliation pass: a report per
// instance plus everything that was skipped along the way.
type Result struct {
	Reports   []types.Report
	Conflicts []types.Conflict
	Malformed []error
}

// Run scans the chest, resolves placement for every instance, and applies
// the deltas. With dryRun set, nothing touches disk and the reports show
// what the apply phase would have done.
func Run(fsys types.FS, p *paths.Paths, instances []types.Instance, policy Policy, dryRun bool) (*Result, error) {
	logger := logging.GetLogger("place")
	done := logging.LogOperationStart(logger, "place")
	defer done()

	scan, err := chest.Scan(fsys, p)
	if err != nil {
		return nil, err
	}

	resolution, err := Resolve(fsys, p.ChestDir(), scan.Entries, instances, policy)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Conflicts: resolution.Conflicts,
		Malformed: scan.Malformed,
	}

	if dryRun {
		for _, delta := range resolution.Deltas {
			result.Reports = append(result.Reports, planReport(delta))
		}
		return result, nil
	}

	result.Reports = ApplyAll(fsys, p.ChestDir(), resolution.Deltas)
	return result, nil
}

// planReport describes a delta as if it had been applied, for dry runs.
func planReport(delta types.Delta) types.Report {
	report := types.Report{Instance: delta.Instance.Name}
	for _, spec := range delta.ToCreate {
		report.Outcomes = append(report.Outcomes, types.LinkOutcome{
			Path:   spec.LinkPath(delta.Instance.Root),
			Status: types.StatusCreated,
		})
	}
	for _, linkPath := range delta.ToRemove {
		report.Outcomes = append(report.Outcomes, types.LinkOutcome{
			Path:   linkPath,
			Status: types.StatusRemoved,
		})
	}
	for _, spec := range delta.Unchanged {
		report.Outcomes = append(report.Outcomes, types.LinkOutcome{
			Path:   spec.LinkPath(delta.Instance.Root),
			Status: types.StatusUnchanged,
		})
	}
	return report
}
