package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/luwae/permanent/internal/core/domain"
)

// TextFormatter prints a report in the plain line-oriented layout.
// Anything other than a report falls back to a table.
type TextFormatter struct {
	Color  bool
	Detail bool
	Wide   bool
}

// Format formats data as text.
func (f *TextFormatter) Format(w io.Writer, data any) error {
	switch r := data.(type) {
	case *domain.Report:
		return WriteReport(w, r, f.Color, f.Detail)
	case domain.Report:
		return WriteReport(w, &r, f.Color, f.Detail)
	}
	return (&TableFormatter{Wide: f.Wide, Color: f.Color}).Format(w, data)
}

// WriteReport writes the image counts, per-interval atomicity and
// per-checkpoint SFS verdicts of r. With detail set, the states behind each
// violation follow its verdict line.
func WriteReport(w io.Writer, r *domain.Report, color, detail bool) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "pmem images: %d\n", r.Summary.PMEMImages)
	fmt.Fprintf(bw, "nvme images: %d\n", r.Summary.NVMeImages)
	fmt.Fprintf(bw, "hybrid images: %d\n", r.Summary.HybridImages)
	fmt.Fprintf(bw, "number of semantic states: %d\n", r.Summary.SemanticStates)

	fmt.Fprintf(bw, "\nnumber of semantic states per logical operation:\n")
	for _, iv := range r.Intervals {
		fmt.Fprintf(bw, "[%d..%d]: %d -> %s\n", iv.Index, iv.Index+1, iv.Count,
			Colorize(iv.Atomic, atomicWord(iv.Atomic), color))
		if detail && !iv.Atomic {
			writeStates(bw, iv.States)
		}
	}

	fmt.Fprintf(bw, "\nsingle final state:\n")
	for _, cv := range r.Checkpoints {
		fmt.Fprintf(bw, "checkpoint %d: %s\n", cv.Index,
			Colorize(cv.SFS, sfsWord(cv.SFS), color))
		if detail && !cv.SFS {
			writeStates(bw, cv.States)
		}
	}

	return bw.Flush()
}

func writeStates(w io.Writer, states []domain.StateHash) {
	for _, s := range states {
		fmt.Fprintf(w, "    state %s\n", s)
	}
}

func atomicWord(ok bool) string {
	if ok {
		return "atomic"
	}
	return "not atomic"
}

func sfsWord(ok bool) string {
	if ok {
		return "SFS"
	}
	return "not SFS"
}
