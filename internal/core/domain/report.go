package domain

import "time"

// AtomicLimit is the largest number of semantic states an interval may
// expose and still count as atomic: one "before" and one "after" state.
const AtomicLimit = 2

// SFSLimit is the largest number of semantic states reachable exactly at a
// checkpoint for it to count as a single final state.
const SFSLimit = 1

// Summary holds the image and state counts of a run.
type Summary struct {
	PMEMImages     int `json:"pmem_images" yaml:"pmem_images"`
	NVMeImages     int `json:"nvme_images" yaml:"nvme_images"`
	HybridImages   int `json:"hybrid_images" yaml:"hybrid_images"`
	SemanticStates int `json:"semantic_states" yaml:"semantic_states"`
	Checkpoints    int `json:"checkpoints" yaml:"checkpoints"`
}

// IntervalVerdict is the atomicity result for the interval [Index..Index+1].
type IntervalVerdict struct {
	Index  int         `json:"index" yaml:"index"`
	Count  int         `json:"count" yaml:"count"`
	Atomic bool        `json:"atomic" yaml:"atomic"`
	States []StateHash `json:"states,omitempty" yaml:"states,omitempty"`
}

// CheckpointVerdict is the single-final-state result for one checkpoint.
type CheckpointVerdict struct {
	Index   int         `json:"index" yaml:"index"`
	TraceID TraceID     `json:"trace_id" yaml:"trace_id"`
	SFS     bool        `json:"sfs" yaml:"sfs"`
	States  []StateHash `json:"states,omitempty" yaml:"states,omitempty"`
}

// Report is the full analysis result of one run.
type Report struct {
	RunID       string              `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	CreatedAt   time.Time           `json:"created_at" yaml:"created_at"`
	IndexDir    string              `json:"index_dir,omitempty" yaml:"index_dir,omitempty"`
	Fingerprint string              `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Mode        Mode                `json:"mode" yaml:"mode"`
	Summary     Summary             `json:"summary" yaml:"summary"`
	Intervals   []IntervalVerdict   `json:"intervals" yaml:"intervals"`
	Checkpoints []CheckpointVerdict `json:"checkpoints" yaml:"checkpoints"`
}

// AllAtomic reports whether every interval is atomic.
func (r *Report) AllAtomic() bool {
	for _, iv := range r.Intervals {
		if !iv.Atomic {
			return false
		}
	}
	return true
}

// AllSFS reports whether every checkpoint has a single final state.
func (r *Report) AllSFS() bool {
	for _, cv := range r.Checkpoints {
		if !cv.SFS {
			return false
		}
	}
	return true
}

// Passed reports whether the run has no atomicity or SFS violation.
func (r *Report) Passed() bool {
	return r.AllAtomic() && r.AllSFS()
}
