package metric

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/luwae/permanent/internal/infra/buildinfo"
)

func buildinfoFixture() buildinfo.Info {
	return buildinfo.Info{
		Version:   "v1.2.3",
		Commit:    "abc123",
		GoVersion: "go1.24.4",
	}
}

func TestBuildInfoCollector(t *testing.T) {
	c := NewBuildInfoCollector(buildinfoFixture())

	expected := `
# HELP permanent_build_info Build information of the permanent-report binary.
# TYPE permanent_build_info gauge
permanent_build_info{commit="abc123",go_version="go1.24.4",version="v1.2.3"} 1
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
		t.Errorf("CollectAndCompare() error = %v", err)
	}
}
