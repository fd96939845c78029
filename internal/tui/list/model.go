package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// halfViewportDivisor centers the selection in the viewport.
const halfViewportDivisor = 2

// RenderFunc renders one item. selected is true for the highlighted row.
type RenderFunc[T any] func(item T, selected bool) string

// VirtualListModel is a selectable list that renders only its visible rows.
type VirtualListModel[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	selected    int
	visibleFrom int
	visibleTo   int

	height int
	width  int
}

// NewVirtualListModel returns a list over items sized height rows by width
// columns.
func NewVirtualListModel[T any](items []T, height, width int, renderFunc RenderFunc[T]) *VirtualListModel[T] {
	m := &VirtualListModel[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     height,
		width:      width,
	}
	m.updateVisibleRange()
	return m
}

// Init implements tea.Model.
func (m *VirtualListModel[T]) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys and resizes.
func (m *VirtualListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

//nolint:exhaustive // Only navigation keys are handled.
func (m *VirtualListModel[T]) handleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyUp:
		m.SetSelected(m.selected - 1)
	case tea.KeyDown:
		m.SetSelected(m.selected + 1)
	case tea.KeyPgUp:
		m.SetSelected(m.selected - m.height)
	case tea.KeyPgDown:
		m.SetSelected(m.selected + m.height)
	case tea.KeyHome:
		m.SetSelected(0)
	case tea.KeyEnd:
		m.SetSelected(len(m.items) - 1)
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "j":
			m.SetSelected(m.selected + 1)
		case "k":
			m.SetSelected(m.selected - 1)
		}
	default:
	}
}

// SetItems replaces the list content and moves the selection to the top.
func (m *VirtualListModel[T]) SetItems(items []T) {
	m.items = items
	m.selected = 0
	m.updateVisibleRange()
}

// SetSize changes the viewport.
func (m *VirtualListModel[T]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.updateVisibleRange()
}

func (m *VirtualListModel[T]) updateVisibleRange() {
	if len(m.items) == 0 {
		m.visibleFrom, m.visibleTo = 0, 0
		return
	}

	half := m.height / halfViewportDivisor
	from := m.selected - half
	to := from + m.height

	if from < 0 {
		from = 0
		to = m.height
	}
	if to > len(m.items) {
		to = len(m.items)
		from = max(to-m.height, 0)
	}

	m.visibleFrom, m.visibleTo = from, to
}

// View renders the visible rows, one per line.
func (m *VirtualListModel[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}
	lines := make([]string, 0, m.visibleTo-m.visibleFrom)
	for i := m.visibleFrom; i < m.visibleTo; i++ {
		lines = append(lines, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// ItemCount returns the number of items.
func (m *VirtualListModel[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the selected index.
func (m *VirtualListModel[T]) Selected() int {
	return m.selected
}

// SetSelected moves the selection, clamped to the items.
func (m *VirtualListModel[T]) SetSelected(index int) {
	m.selected = min(max(index, 0), max(len(m.items)-1, 0))
	m.updateVisibleRange()
}

// VisibleFrom returns the first visible index.
func (m *VirtualListModel[T]) VisibleFrom() int {
	return m.visibleFrom
}

// VisibleTo returns the index after the last visible row.
func (m *VirtualListModel[T]) VisibleTo() int {
	return m.visibleTo
}

// Width returns the viewport width.
func (m *VirtualListModel[T]) Width() int {
	return m.width
}

// SelectedItem returns the selected item, or nil for an empty list.
func (m *VirtualListModel[T]) SelectedItem() *T {
	if len(m.items) == 0 {
		return nil
	}
	return &m.items[m.selected]
}
