package types

// OutcomeStatus classifies the result of applying one delta entry.
type OutcomeStatus string

const (
	// StatusCreated means a new placed link was created.
	StatusCreated OutcomeStatus = "created"

	// StatusReplaced means an existing managed link was repointed.
	StatusReplaced OutcomeStatus = "replaced"

	// StatusRemoved means a stale managed link was deleted.
	StatusRemoved OutcomeStatus = "removed"

	// StatusUnchanged means the entry was already in the desired state.
	StatusUnchanged OutcomeStatus = "unchanged"

	// StatusSkippedRealFile means the slot is occupied by something this
	// system does not manage (a regular file, or a foreign symlink) and
	// was left alone.
	StatusSkippedRealFile OutcomeStatus = "conflicts-with-real-file"

	// StatusFailed means the filesystem operation itself failed.
	StatusFailed OutcomeStatus = "failed"
)

// LinkOutcome is the result of applying one entry of a delta. Outcomes are
// independent: one failure never aborts the rest of the reconciliation.
type LinkOutcome struct {
	Path   string
	Status OutcomeStatus
	Err    error
}

// Report collects the per-entry outcomes of reconciling one instance.
type Report struct {
	Instance string
	Outcomes []LinkOutcome
}

// Failures returns the outcomes that were not applied cleanly.
func (r Report) Failures() []LinkOutcome {
	var failed []LinkOutcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed || o.Status == StatusSkippedRealFile {
			failed = append(failed, o)
		}
	}
	return failed
}

// Changed reports whether the reconciliation touched the filesystem.
func (r Report) Changed() bool {
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusCreated, StatusReplaced, StatusRemoved:
			return true
		}
	}
	return false
}

// Count returns how many outcomes carry the given status.
func (r Report) Count(status OutcomeStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
