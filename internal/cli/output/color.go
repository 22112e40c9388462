package output

import (
	"os"

	"github.com/mattn/go-isatty"
)

const (
	colorGreen = "\033[92m"
	colorRed   = "\033[91m"
	colorReset = "\033[0m"
)

// Colorize wraps text in green when ok, red otherwise. With color off the
// text is returned unchanged.
func Colorize(ok bool, text string, color bool) string {
	if !color {
		return text
	}
	if ok {
		return colorGreen + text + colorReset
	}
	return colorRed + text + colorReset
}

// ColorEnabled resolves a color mode (auto, always, never) for f.
// Auto enables color when f is a terminal and NO_COLOR is unset.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
