package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode selects how progress is rendered.
type Mode int

const (
	// ModeNonInteractive prints plain progress lines, suitable for logs and CI.
	ModeNonInteractive Mode = iota
	// ModeInteractive draws a live progress bar.
	ModeInteractive
)

// DetectMode returns ModeNonInteractive when POREKIT_NON_INTERACTIVE=1, CI or
// NO_COLOR is set, or when stderr is not a terminal.
func DetectMode() Mode {
	if os.Getenv("POREKIT_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}

	// Progress and logs go to stderr; stdout may be a pipe carrying CSV.
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return ModeNonInteractive
	}

	return ModeInteractive
}

// IsInteractive reports whether DetectMode returns ModeInteractive.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
