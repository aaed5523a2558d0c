package game

// ProgressUpdate is the outcome of evaluating one achievement candidate.
// Write indicates whether the stored row needs updating at all.
type ProgressUpdate struct {
	Progress  int64
	Completed bool
	Write     bool
}

// AdvanceProgress applies the incremental strategy: the observed value is a
// delta (or a running total the caller trusts) added on top of the stored
// progress. Used for sell and level achievements.
func AdvanceProgress(current, observed, objective int64) ProgressUpdate {
	next := current + observed
	return ProgressUpdate{
		Progress:  next,
		Completed: next >= objective,
		Write:     true,
	}
}

// SyncProgress applies the absolute strategy: progress is set to the live
// aggregate (the resource's current quantity), not incremented. The write is
// skipped when the stored value already matches and completion did not newly
// flip, so repeated collect checks on an unchanged quantity cost nothing.
// Used for collect achievements.
func SyncProgress(current int64, alreadyCompleted bool, live, objective int64) ProgressUpdate {
	completed := live >= objective
	return ProgressUpdate{
		Progress:  live,
		Completed: completed,
		Write:     live != current || (completed && !alreadyCompleted),
	}
}
