package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState is the screen a model is showing.
type ViewState int

const (
	// ViewStateLoading is shown until the first page arrives.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the product page.
	ViewStateList
	// ViewStateDetail shows one product.
	ViewStateDetail
	// ViewStateError shows a failed query. It is terminal.
	ViewStateError
	// ViewStateReauthorize shows the host's redirect target before quitting.
	ViewStateReauthorize
	// ViewStateQuitting renders nothing.
	ViewStateQuitting
)

// Key bindings.
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
	keyEsc   = "esc"
	keySlash = "/"
	keyS     = "s"
	keyN     = "n"
	keyP     = "p"
	keyRight = "right"
	keyLeft  = "left"
)

const searchCharLimit = 255

// LoadingState is the spinner shown while a query is in flight.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState returns a dot spinner with a default message.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = InfoStyle
	return &LoadingState{spinner: s, message: "Loading products..."}
}

// Init starts the spinner.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner on its tick messages.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// View renders the spinner and message on one line.
func (l *LoadingState) View() string {
	return l.spinner.View() + " " + l.message
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search products"
	ti.Prompt = ""
	ti.CharLimit = searchCharLimit
	return ti
}
