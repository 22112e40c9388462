package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "table", "json", "yaml"} {
		f, err := ParseFormat(s)
		if err != nil {
			t.Errorf("ParseFormat(%q) error = %v", s, err)
		}
		if string(f) != s {
			t.Errorf("ParseFormat(%q) = %q", s, f)
		}
	}

	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format Format
		opts   Options
	}{
		{FormatText, Options{}},
		{FormatText, Options{Color: true, Detail: true}},
		{FormatJSON, Options{}},
		{FormatYAML, Options{}},
		{FormatTable, Options{}},
		{FormatTable, Options{Wide: true}},
		{"unknown", Options{}}, // default to text
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f := NewFormatter(tt.format, tt.opts)
			if f == nil {
				t.Fatal("NewFormatter returned nil")
			}

			switch tt.format {
			case FormatJSON:
				if _, ok := f.(*JSONFormatter); !ok {
					t.Error("expected JSONFormatter")
				}
			case FormatYAML:
				if _, ok := f.(*YAMLFormatter); !ok {
					t.Error("expected YAMLFormatter")
				}
			case FormatTable:
				tf, ok := f.(*TableFormatter)
				if !ok {
					t.Fatal("expected TableFormatter")
				}
				if tf.Wide != tt.opts.Wide {
					t.Errorf("Wide = %v, want %v", tf.Wide, tt.opts.Wide)
				}
			default:
				tf, ok := f.(*TextFormatter)
				if !ok {
					t.Fatal("expected TextFormatter")
				}
				if tf.Color != tt.opts.Color || tf.Detail != tt.opts.Detail {
					t.Errorf("TextFormatter = %+v, want options %+v", tf, tt.opts)
				}
			}
		})
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	f := &JSONFormatter{}

	t.Run("formats report", func(t *testing.T) {
		var buf bytes.Buffer
		if err := f.Format(&buf, sampleReport()); err != nil {
			t.Fatalf("Format() error = %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			`"pmem_images": 2`,
			`"atomic": false`,
			`"trace_id": "3"`,
			`"mode": "hybrid"`,
		} {
			if !strings.Contains(out, want) {
				t.Errorf("Format() missing %s", want)
			}
		}
	})

	t.Run("formats nil as JSON", func(t *testing.T) {
		var buf bytes.Buffer
		if err := f.Format(&buf, nil); err != nil {
			t.Fatalf("Format(nil) error = %v", err)
		}
		if out := strings.TrimSpace(buf.String()); out != "null" {
			t.Errorf("Format(nil) = %q, want 'null'", out)
		}
	})
}

func TestYAMLFormatter_Format(t *testing.T) {
	f := &YAMLFormatter{}

	var buf bytes.Buffer
	if err := f.Format(&buf, sampleReport()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"run_id: ",
		"summary:\n  pmem_images: 2\n",
		"  - index: 1\n    count: 3\n    atomic: false\n",
		"trace_id: \"3\"\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}
