package tui

import "github.com/charmbracelet/lipgloss"

// Default dimensions before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 24
	borderPadding = 4
)

// Palette.
var (
	ColorHeader    = lipgloss.Color("39")  //nolint:gochecknoglobals // Style constant.
	ColorLabel     = lipgloss.Color("245") //nolint:gochecknoglobals // Style constant.
	ColorValue     = lipgloss.Color("252") //nolint:gochecknoglobals // Style constant.
	ColorMuted     = lipgloss.Color("240") //nolint:gochecknoglobals // Style constant.
	ColorHighlight = lipgloss.Color("229") //nolint:gochecknoglobals // Style constant.
	ColorSelected  = lipgloss.Color("57")  //nolint:gochecknoglobals // Style constant.
	ColorError     = lipgloss.Color("196") //nolint:gochecknoglobals // Style constant.
	ColorWarning   = lipgloss.Color("214") //nolint:gochecknoglobals // Style constant.
)

// Shared styles.
//
//nolint:gochecknoglobals // Style constants.
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorHeader).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorMuted)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	SubtleStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	InfoStyle     = lipgloss.NewStyle().Foreground(ColorHeader)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	ErrorStyle    = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	SelectedStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Background(ColorSelected)
	BoxStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)
)
