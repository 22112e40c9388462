package indexfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/luwae/permanent/internal/core/domain"
	"github.com/luwae/permanent/internal/telemetry/logger"
	"github.com/luwae/permanent/pkg/fingerprint"
)

// Index file names inside a run directory.
const (
	PMEMFile       = "pmem.index"
	NVMeFile       = "nvme.index"
	StatesFile     = "states.index"
	CheckpointFile = "checkpoint.index"
)

// Result is the outcome of loading one run directory.
type Result struct {
	Indices *domain.Indices
	// Fingerprint identifies the file contents; see package fingerprint.
	Fingerprint string
	// Files lists the index files that were read, in read order.
	Files []string
}

// Loader reads index files from a directory.
type Loader struct {
	dir    string
	fsys   fs.FS
	logger logger.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithFS reads from fsys instead of the OS filesystem rooted at dir.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) {
		l.fsys = fsys
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(lg logger.Logger) Option {
	return func(l *Loader) {
		l.logger = lg
	}
}

// NewLoader creates a loader for the run directory dir.
func NewLoader(dir string, opts ...Option) *Loader {
	l := &Loader{
		dir:    dir,
		logger: logger.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.fsys == nil {
		l.fsys = os.DirFS(dir)
	}
	return l
}

// Dir returns the run directory.
func (l *Loader) Dir() string {
	return l.dir
}

// Load reads and validates every index file.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	log := l.logger.WithContext(ctx).With("dir", l.dir)
	digest := fingerprint.New()
	res := &Result{Indices: &domain.Indices{}}

	read := func(name string, required bool) ([]byte, error) {
		data, err := fs.ReadFile(l.fsys, name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				if required {
					return nil, domain.ErrIndexNotFound.WithDetails(filepath.Join(l.dir, name))
				}
				return nil, nil
			}
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		digest.Add(name, data)
		res.Files = append(res.Files, name)
		return data, nil
	}

	pmemData, err := read(PMEMFile, false)
	if err != nil {
		return nil, err
	}
	nvmeData, err := read(NVMeFile, false)
	if err != nil {
		return nil, err
	}

	idx := res.Indices
	switch {
	case pmemData != nil && nvmeData != nil:
		idx.Mode = domain.ModeHybrid
	case pmemData != nil:
		idx.Mode = domain.ModePMEM
	case nvmeData != nil:
		idx.Mode = domain.ModeNVMe
	default:
		return nil, domain.ErrIndexNotFound.WithDetailsf("neither %s nor %s in %s", PMEMFile, NVMeFile, l.dir)
	}

	if pmemData != nil {
		if idx.PMEM, err = ParseTierIndex(PMEMFile, pmemData); err != nil {
			return nil, err
		}
	}
	if nvmeData != nil {
		if idx.NVMe, err = ParseTierIndex(NVMeFile, nvmeData); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	statesData, err := read(StatesFile, true)
	if err != nil {
		return nil, err
	}
	if idx.States, err = ParseStatesIndex(StatesFile, statesData); err != nil {
		return nil, err
	}

	cpData, err := read(CheckpointFile, true)
	if err != nil {
		return nil, err
	}
	if idx.Checkpoints, err = ParseCheckpointIndex(CheckpointFile, cpData); err != nil {
		return nil, err
	}

	if idx.Mode == domain.ModeHybrid {
		if onlyPMEM, onlyNVMe := keyDiscrepancy(idx.PMEM, idx.NVMe); onlyPMEM+onlyNVMe > 0 {
			log.Warn("pmem and nvme indices cover different trace ids",
				"only_pmem", onlyPMEM,
				"only_nvme", onlyNVMe)
		}
	}

	res.Fingerprint = digest.Sum()
	log.Debug("index files loaded",
		"mode", idx.Mode,
		"files", len(res.Files),
		"fingerprint", fingerprint.Short(res.Fingerprint))

	return res, nil
}

// ParseTierIndex decodes a trace ID -> hashes mapping. Trace IDs that
// normalize to the same number are merged.
func ParseTierIndex(file string, data []byte) (domain.TierIndex, error) {
	raw, err := decodeObject(file, data)
	if err != nil {
		return nil, err
	}

	idx := make(domain.TierIndex, len(raw))
	for key, value := range raw {
		traceID, err := domain.TraceID(key).Canonical()
		if err != nil {
			return nil, malformed(file, key, err)
		}
		hashes, err := decodeStrings(value)
		if err != nil {
			return nil, malformed(file, key, err)
		}
		for _, h := range hashes {
			idx[traceID] = append(idx[traceID], domain.TierHash(h))
		}
		if _, ok := idx[traceID]; !ok {
			idx[traceID] = []domain.TierHash{}
		}
	}
	return idx, nil
}

// ParseStatesIndex decodes a state hash -> hybrid hashes mapping.
// Hybrid hash format is checked during analysis, not here.
func ParseStatesIndex(file string, data []byte) (domain.StatesIndex, error) {
	raw, err := decodeObject(file, data)
	if err != nil {
		return nil, err
	}

	idx := make(domain.StatesIndex, len(raw))
	for key, value := range raw {
		hashes, err := decodeStrings(value)
		if err != nil {
			return nil, malformed(file, key, err)
		}
		hybrids := make([]domain.HybridHash, len(hashes))
		for i, h := range hashes {
			hybrids[i] = domain.HybridHash(h)
		}
		idx[domain.StateHash(key)] = hybrids
	}
	return idx, nil
}

// ParseCheckpointIndex decodes an object whose values are checkpoint trace
// IDs, given as JSON numbers or numeric strings.
func ParseCheckpointIndex(file string, data []byte) (domain.CheckpointIndex, error) {
	raw, err := decodeObject(file, data)
	if err != nil {
		return nil, err
	}

	idx := make(domain.CheckpointIndex, len(raw))
	for key, value := range raw {
		traceID, err := decodeTraceID(value)
		if err != nil {
			return nil, malformed(file, key, err)
		}
		idx[key] = traceID
	}
	return idx, nil
}

func decodeObject(file string, data []byte) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, domain.ErrMalformedIndex.WithDetailsf("%s: want a JSON object", file).WithCause(err)
	}
	if raw == nil {
		return nil, domain.ErrMalformedIndex.WithDetailsf("%s: want a JSON object, got null", file)
	}
	return raw, nil
}

// decodeStrings decodes a JSON array of strings. Unmarshal maps null to a
// nil slice and a null element to a nil pointer; both are rejected.
func decodeStrings(value json.RawMessage) ([]string, error) {
	var raw []*string
	if err := json.Unmarshal(value, &raw); err != nil {
		return nil, fmt.Errorf("want an array of strings: %w", err)
	}
	if raw == nil {
		return nil, errors.New("want an array of strings, got null")
	}
	out := make([]string, len(raw))
	for i, s := range raw {
		if s == nil {
			return nil, fmt.Errorf("want an array of strings, got null at index %d", i)
		}
		out[i] = *s
	}
	return out, nil
}

func decodeTraceID(value json.RawMessage) (domain.TraceID, error) {
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return domain.TraceID(s).Canonical()
	}
	var n json.Number
	if err := json.Unmarshal(value, &n); err != nil {
		return "", fmt.Errorf("want a trace id string or number: %w", err)
	}
	return domain.TraceID(n.String()).Canonical()
}

func malformed(file, key string, cause error) error {
	return domain.ErrMalformedIndex.WithDetailsf("%s: key %q", file, key).WithCause(cause)
}

// keyDiscrepancy counts trace IDs present in only one tier index.
func keyDiscrepancy(pmem, nvme domain.TierIndex) (onlyPMEM, onlyNVMe int) {
	for id := range pmem {
		if _, ok := nvme[id]; !ok {
			onlyPMEM++
		}
	}
	for id := range nvme {
		if _, ok := pmem[id]; !ok {
			onlyNVMe++
		}
	}
	return onlyPMEM, onlyNVMe
}
