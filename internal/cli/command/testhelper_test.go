package command

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"
)

// scenarioFiles is a hybrid run with two checkpoints and two states, both
// verdicts passing.
func scenarioFiles() map[string]string {
	return map[string]string{
		"pmem.index":       `{"0":["p1"],"1":["p1"],"2":["p2"]}`,
		"nvme.index":       `{"0":["n1"],"1":["n1"],"2":["n1"]}`,
		"states.index":     `{"S1":["p1_n1"],"S2":["p2_n1"]}`,
		"checkpoint.index": `{"a":0,"b":"2"}`,
	}
}

// violatingFiles adds a third state reachable from the first images.
func violatingFiles() map[string]string {
	files := scenarioFiles()
	files["states.index"] = `{"S1":["p1_n1"],"S2":["p2_n1"],"S3":["p1_n1"]}`
	return files
}

// writeRun writes index files into a fresh directory.
func writeRun(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

// isolate points HOME at an empty directory and clears PERMANENT_*
// variables the host may have set.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, name := range []string{"PERMANENT_CONFIG", "PERMANENT_OUTPUT", "PERMANENT_COLOR", "PERMANENT_INDEX_DIR"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	return home
}

type appResult struct {
	stdout   string
	stderr   string
	exitCode int
	err      error
}

// runApp runs the CLI with args and captures output and exit code.
func runApp(t *testing.T, args ...string) appResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	res := appResult{exitCode: -1}

	oldExiter := cli.OsExiter
	cli.OsExiter = func(code int) { res.exitCode = code }
	t.Cleanup(func() { cli.OsExiter = oldExiter })

	app := App()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	res.err = app.Run(append([]string{"permanent-report"}, args...))
	res.stdout = stdout.String()
	res.stderr = stderr.String()
	return res
}
