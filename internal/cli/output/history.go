package output

import (
	"time"

	"github.com/luwae/permanent/internal/core/domain"
	"github.com/luwae/permanent/pkg/fingerprint"
)

// HistoryEntry is one row of the report history listing.
type HistoryEntry struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	Mode        string    `json:"mode" yaml:"mode"`
	Result      string    `json:"result" yaml:"result"`
	Violations  int       `json:"violations" yaml:"violations"`
	IndexDir    string    `json:"index_dir" yaml:"index_dir" table:"wide"`
	Fingerprint string    `json:"fingerprint" yaml:"fingerprint" table:"wide"`
}

// HistoryEntries summarizes stored reports for listing.
func HistoryEntries(reports []*domain.Report) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(reports))
	for _, r := range reports {
		entries = append(entries, HistoryEntry{
			RunID:       r.RunID,
			CreatedAt:   r.CreatedAt,
			Mode:        string(r.Mode),
			Result:      resultWord(r.Passed()),
			Violations:  Violations(r),
			IndexDir:    r.IndexDir,
			Fingerprint: fingerprint.Short(r.Fingerprint),
		})
	}
	return entries
}

// Violations counts non-atomic intervals plus non-SFS checkpoints.
func Violations(r *domain.Report) int {
	n := 0
	for _, iv := range r.Intervals {
		if !iv.Atomic {
			n++
		}
	}
	for _, cv := range r.Checkpoints {
		if !cv.SFS {
			n++
		}
	}
	return n
}

func resultWord(passed bool) string {
	if passed {
		return "pass"
	}
	return "fail"
}
