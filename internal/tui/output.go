package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results reach the terminal.
type OutputMode int

const (
	// OutputModePlain writes unstyled text.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes lipgloss-styled text without interaction.
	OutputModeStyled
	// OutputModeInteractive runs the Bubble Tea program.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModeInteractive:
		return "interactive"
	case OutputModeStyled:
		return "styled"
	default:
		return "plain"
	}
}

// DetectOutputMode picks a mode for stdout. plain and noColor win over
// everything; an interactive program needs both stdin and stdout on a
// terminal. forceColor styles output that is not a terminal.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	return detectOutputMode(forceColor, noColor, plain,
		isTerminal(os.Stdout), isTerminal(os.Stdin), os.Getenv("NO_COLOR") != "", os.Getenv("TERM") == "dumb")
}

func detectOutputMode(forceColor, noColor, plain, stdoutTTY, stdinTTY, envNoColor, dumb bool) OutputMode {
	if plain || noColor || envNoColor {
		return OutputModePlain
	}
	if forceColor {
		if stdoutTTY && stdinTTY && !dumb {
			return OutputModeInteractive
		}
		return OutputModeStyled
	}
	if !stdoutTTY || dumb {
		return OutputModePlain
	}
	if !stdinTTY {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // Fd fits in int on supported platforms.
}
