package sdk

import (
	"os"

	"github.com/spf13/afero"
)

// Mode selects between reporting and real deletion.
type Mode int

const (
	// DryRun reports intended removals without touching the filesystem.
	DryRun Mode = iota
	// Apply performs real recursive deletions.
	Apply
)

func (m Mode) String() string {
	if m == Apply {
		return "apply"
	}
	return "dry-run"
}

// Status is the per-candidate outcome of executing a decision.
type Status string

const (
	// StatusPlanned marks an intended removal in dry-run mode.
	StatusPlanned Status = "PLANNED"
	// StatusSucceeded marks a completed deletion in apply mode.
	StatusSucceeded Status = "SUCCEEDED"
	// StatusFailed marks a deletion that errored; the run continues.
	StatusFailed Status = "FAILED"
	// StatusSkippedAbsent marks a candidate whose path vanished between
	// discovery and execution.
	StatusSkippedAbsent Status = "SKIPPED_ALREADY_ABSENT"
	// StatusSkippedKept marks a KEEP decision; no filesystem access occurs.
	StatusSkippedKept Status = "SKIPPED_KEPT"
)

// Result records the outcome of executing one decision.
type Result struct {
	Decision Decision
	Status   Status

	// Size is the candidate's on-disk size in bytes, -1 when unknown.
	// Sizing is best-effort; a vanishing path is not an error.
	Size int64

	// Err is set when Status is StatusFailed.
	Err error
}

// Sink receives one audit entry per processed decision. Apply records the
// entry before moving on to the next candidate, so sink ordering matches
// processing order.
type Sink interface {
	Record(d Decision, status Status, size int64, err error)
}

// Executor applies retention decisions against a filesystem. Candidates are
// processed one at a time, in the order given; a failure on one candidate
// never aborts the rest of the batch.
type Executor struct {
	FS    afero.Fs
	Mode  Mode
	Audit Sink
}

// Apply executes every decision and returns one Result per decision, in
// input order.
func (e *Executor) Apply(decisions []Decision) []Result {
	results := make([]Result, 0, len(decisions))
	for _, d := range decisions {
		r := e.applyOne(d)
		if e.Audit != nil {
			e.Audit.Record(d, r.Status, r.Size, r.Err)
		}
		results = append(results, r)
	}
	return results
}

func (e *Executor) applyOne(d Decision) Result {
	r := Result{Decision: d, Size: -1}

	if d.Action == ActionKeep {
		r.Status = StatusSkippedKept
		return r
	}

	exists, err := afero.Exists(e.FS, d.Candidate.Path)
	if err == nil && !exists {
		// A dry run still records the intended removal; only a real apply
		// reports the path as already gone.
		r.Status = StatusSkippedAbsent
		if e.Mode == DryRun {
			r.Status = StatusPlanned
		}
		r.Size = 0
		return r
	}

	r.Size = e.SizeOf(d.Candidate.Path)

	if e.Mode == DryRun {
		r.Status = StatusPlanned
		return r
	}

	if err := e.FS.RemoveAll(d.Candidate.Path); err != nil {
		// Typically permission denial; recorded, not fatal to the run.
		r.Status = StatusFailed
		r.Err = err
		return r
	}

	r.Status = StatusSucceeded
	return r
}

// SizeOf sums file sizes under path, tolerating entries that vanish or deny
// access mid-walk. Returns -1 when nothing could be read at all.
func (e *Executor) SizeOf(path string) int64 {
	var total int64
	seen := false
	_ = afero.Walk(e.FS, path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		seen = true
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	if !seen {
		return -1
	}
	return total
}
