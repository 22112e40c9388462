package benchmark

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/luwae/permanent/internal/core/domain"
	"github.com/luwae/permanent/internal/storage/indexfile"
)

// TraceCounts defines the run sizes for benchmarking.
var TraceCounts = []int{1000, 10000, 100000}

// SmallTraceCounts for quick benchmarks.
var SmallTraceCounts = []int{1000, 10000}

// runShape controls the synthetic run generator.
type runShape struct {
	Traces          int
	CheckpointEvery int
	// PMEMChangeEvery and NVMeChangeEvery set how often each tier moves
	// to a new image.
	PMEMChangeEvery int
	NVMeChangeEvery int
}

func defaultShape(traces int) runShape {
	return runShape{
		Traces:          traces,
		CheckpointEvery: 50,
		PMEMChangeEvery: 7,
		NVMeChangeEvery: 11,
	}
}

// generateRun builds indices where each hybrid image is its own semantic
// state, except that roughly one in ten is merged into its predecessor.
func generateRun(shape runShape) *domain.Indices {
	rng := rand.New(rand.NewSource(int64(shape.Traces)))

	idx := &domain.Indices{
		Mode:        domain.ModeHybrid,
		PMEM:        make(domain.TierIndex, shape.Traces),
		NVMe:        make(domain.TierIndex, shape.Traces),
		States:      make(domain.StatesIndex),
		Checkpoints: make(domain.CheckpointIndex),
	}

	hybrids := make(map[domain.HybridHash]struct{})
	for t := 0; t < shape.Traces; t++ {
		id := domain.TraceIDFromUint(uint64(t))
		p := domain.TierHash(fmt.Sprintf("p%08x", t/shape.PMEMChangeEvery))
		n := domain.TierHash(fmt.Sprintf("n%08x", t/shape.NVMeChangeEvery))
		idx.PMEM[id] = []domain.TierHash{p}
		idx.NVMe[id] = []domain.TierHash{n}
		hybrids[domain.HybridHash(string(p)+domain.HybridSeparator+string(n))] = struct{}{}

		if t%shape.CheckpointEvery == 0 {
			idx.Checkpoints[fmt.Sprintf("cp%d", t)] = id
		}
	}
	last := domain.TraceIDFromUint(uint64(shape.Traces - 1))
	idx.Checkpoints["end"] = last

	i := 0
	for h := range hybrids {
		state := domain.StateHash(fmt.Sprintf("s%08x", i))
		if i > 0 && rng.Intn(10) == 0 {
			state = domain.StateHash(fmt.Sprintf("s%08x", i-1))
		}
		idx.States[state] = append(idx.States[state], h)
		i++
	}
	return idx
}

// writeRun writes idx as index files into a temporary directory.
func writeRun(b *testing.B, idx *domain.Indices) string {
	b.Helper()
	dir := b.TempDir()

	files := map[string]any{
		indexfile.PMEMFile:       idx.PMEM,
		indexfile.NVMeFile:       idx.NVMe,
		indexfile.StatesFile:     idx.States,
		indexfile.CheckpointFile: idx.Checkpoints,
	}
	for name, v := range files {
		data, err := json.Marshal(v)
		if err != nil {
			b.Fatalf("marshal %s: %v", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			b.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}
