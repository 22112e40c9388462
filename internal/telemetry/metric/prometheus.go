package metric

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/luwae/permanent/internal/core/domain"
	"github.com/luwae/permanent/internal/infra/buildinfo"
)

const namespace = "permanent"

// Registry holds the analysis metrics of one run.
type Registry struct {
	registry *prometheus.Registry

	Images         *prometheus.GaugeVec
	SemanticStates prometheus.Gauge
	Checkpoints    prometheus.Gauge

	IntervalStates *prometheus.GaugeVec
	IntervalAtomic *prometheus.GaugeVec
	CheckpointSFS  *prometheus.GaugeVec
	Violations     *prometheus.GaugeVec

	RunPassed        prometheus.Gauge
	LastRunTimestamp prometheus.Gauge
	AnalysisDuration prometheus.Gauge
}

// NewRegistry creates the metrics on a private registry.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),

		Images: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "images",
			Help:      "Number of distinct crash images per tier.",
		}, []string{"tier"}),
		SemanticStates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "semantic_states",
			Help:      "Number of distinct semantic states.",
		}),
		Checkpoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "checkpoints",
			Help:      "Number of checkpoints in the run.",
		}),
		IntervalStates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "interval_semantic_states",
			Help:      "Semantic states reachable inside each checkpoint interval.",
		}, []string{"interval"}),
		IntervalAtomic: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "interval_atomic",
			Help:      "1 if the checkpoint interval is atomic, else 0.",
		}, []string{"interval"}),
		CheckpointSFS: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "checkpoint_sfs",
			Help:      "1 if the checkpoint has a single final state, else 0.",
		}, []string{"checkpoint", "trace_id"}),
		Violations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "violations",
			Help:      "Number of failed verdicts by kind.",
		}, []string{"kind"}),
		RunPassed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_passed",
			Help:      "1 if every interval is atomic and every checkpoint SFS, else 0.",
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the report was created.",
		}),
		AnalysisDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Wall time spent loading and analyzing the run.",
		}),
	}

	r.registry.MustRegister(
		r.Images,
		r.SemanticStates,
		r.Checkpoints,
		r.IntervalStates,
		r.IntervalAtomic,
		r.CheckpointSFS,
		r.Violations,
		r.RunPassed,
		r.LastRunTimestamp,
		r.AnalysisDuration,
		NewBuildInfoCollector(buildinfo.Get()),
	)

	return r
}

// Registerer lets other components add their own collectors.
func (r *Registry) Registerer() prometheus.Registerer {
	return r.registry
}

// Gatherer returns the underlying gatherer.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Observe sets every gauge from report. Per-interval and per-checkpoint
// series from an earlier Observe are dropped first.
func (r *Registry) Observe(report *domain.Report, elapsed time.Duration) {
	r.Images.WithLabelValues("pmem").Set(float64(report.Summary.PMEMImages))
	r.Images.WithLabelValues("nvme").Set(float64(report.Summary.NVMeImages))
	r.Images.WithLabelValues("hybrid").Set(float64(report.Summary.HybridImages))
	r.SemanticStates.Set(float64(report.Summary.SemanticStates))
	r.Checkpoints.Set(float64(report.Summary.Checkpoints))

	r.IntervalStates.Reset()
	r.IntervalAtomic.Reset()
	r.CheckpointSFS.Reset()

	var notAtomic, notSFS int
	for _, iv := range report.Intervals {
		label := strconv.Itoa(iv.Index)
		r.IntervalStates.WithLabelValues(label).Set(float64(iv.Count))
		r.IntervalAtomic.WithLabelValues(label).Set(boolValue(iv.Atomic))
		if !iv.Atomic {
			notAtomic++
		}
	}
	for _, cv := range report.Checkpoints {
		r.CheckpointSFS.WithLabelValues(strconv.Itoa(cv.Index), string(cv.TraceID)).Set(boolValue(cv.SFS))
		if !cv.SFS {
			notSFS++
		}
	}

	r.Violations.WithLabelValues("not_atomic").Set(float64(notAtomic))
	r.Violations.WithLabelValues("not_sfs").Set(float64(notSFS))
	r.RunPassed.Set(boolValue(report.Passed()))
	if !report.CreatedAt.IsZero() {
		r.LastRunTimestamp.Set(float64(report.CreatedAt.UnixNano()) / 1e9)
	}
	r.AnalysisDuration.Set(elapsed.Seconds())
}

// WriteTextfile writes all metrics in the text exposition format. The file
// is written to a temporary name and renamed, so readers never see a
// partial file.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.Gatherer()); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
