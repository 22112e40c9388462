package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luwae/permanent/internal/infra/buildinfo"
)

// BuildInfoCollector exposes permanent_build_info with version labels.
type BuildInfoCollector struct {
	desc *prometheus.Desc
	info buildinfo.Info
}

// NewBuildInfoCollector creates a collector for the given build info.
func NewBuildInfoCollector(info buildinfo.Info) *BuildInfoCollector {
	return &BuildInfoCollector{
		desc: prometheus.NewDesc(
			namespace+"_build_info",
			"Build information of the permanent-report binary.",
			[]string{"version", "commit", "go_version"},
			nil,
		),
		info: info,
	}
}

// Describe implements prometheus.Collector.
func (c *BuildInfoCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *BuildInfoCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, 1,
		c.info.Version, c.info.Commit, c.info.GoVersion)
}
