package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/storeview/internal/catalog"
)

// Row column widths.
const (
	colTitle       = 32
	colProductType = 16
	colVendor      = 16
	colDescription = 40
)

// View renders the current view (Bubble Tea interface).
func (m ProductListModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return m.renderErrorView()
	case ViewStateReauthorize:
		return m.renderReauthorizeView()
	case ViewStateDetail:
		return m.renderDetailView()
	case ViewStateLoading:
		return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), "", m.loading.View())
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m ProductListModel) renderHeader() string {
	title := HeaderStyle.Render("PRODUCTS")
	sortLine := LabelStyle.Render("Sort: ") + ValueStyle.Render(m.ctrl.Choice().Label())
	if q := m.ctrl.Search().Committed; q != "" {
		sortLine += LabelStyle.Render("  Search: ") + ValueStyle.Render(q)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, sortLine)
}

func (m ProductListModel) renderListView() string {
	snap := m.ctrl.Snapshot()
	sections := []string{m.renderHeader(), m.renderSearchField()}

	switch {
	case len(snap.Items) > 0:
		sections = append(sections, m.list.View())
	case !snap.Loading:
		sections = append(sections, SubtleStyle.Render("No products found"))
	}

	if snap.Loading {
		sections = append(sections, m.loading.View())
	}
	sections = append(sections, m.renderPager(), m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ProductListModel) renderSearchField() string {
	if m.searching || m.search.Value() != "" {
		return LabelStyle.Render("Search: ") + m.search.View()
	}
	return ""
}

func (m ProductListModel) renderPager() string {
	prev := SubtleStyle.Render("[p] Previous")
	if m.ctrl.CanPrevious() {
		prev = InfoStyle.Render("[p] Previous")
	}
	next := SubtleStyle.Render("[n] Next")
	if m.ctrl.CanNext() {
		next = InfoStyle.Render("[n] Next")
	}
	return prev + "  " + next
}

func (m ProductListModel) renderFooter() string {
	var lines []string
	if m.link != nil {
		if link := m.link(); link != "" {
			lines = append(lines, LabelStyle.Render("Link: ")+link)
		}
	}
	lines = append(lines, SubtleStyle.Render(
		"[/] Search  [esc] Clear  [s] Sort  [1-5] Sort menu  [enter] Details  [q] Quit"))
	return strings.Join(lines, "\n")
}

func (m ProductListModel) renderDetailView() string {
	if m.detail == nil {
		return ""
	}
	p := m.detail
	var content strings.Builder
	content.WriteString(HeaderStyle.Render("PRODUCT DETAIL"))
	content.WriteString("\n\n")
	writeField(&content, "Title", p.Title)
	writeField(&content, "Product type", p.ProductType)
	writeField(&content, "Vendor", p.Vendor)
	writeField(&content, "Created", p.CreatedAt)
	writeField(&content, "ID", p.ID)
	if p.Description != "" {
		content.WriteString("\n")
		content.WriteString(p.Description)
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(SubtleStyle.Render("[esc] Back  [q] Quit"))
	return BoxStyle.Width(max(m.width-borderPadding, colTitle)).Render(content.String())
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		value = "-"
	}
	b.WriteString(LabelStyle.Render(fmt.Sprintf("%-14s", label+":")))
	b.WriteString(ValueStyle.Render(value))
	b.WriteString("\n")
}

func (m ProductListModel) renderErrorView() string {
	return ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" +
		SubtleStyle.Render("[q] Quit") + "\n"
}

func (m ProductListModel) renderReauthorizeView() string {
	return WarningStyle.Render("Reauthorization required.") + "\n" +
		LabelStyle.Render("Continue at: ") + m.reauthURL + "\n"
}

// renderProductRow renders title, type, vendor and description on one line.
func renderProductRow(edge catalog.Edge, selected bool) string {
	p := edge.Node
	line := fmt.Sprintf("%-*s %-*s %-*s %s",
		colTitle, truncate(p.Title, colTitle),
		colProductType, truncate(p.ProductType, colProductType),
		colVendor, truncate(p.Vendor, colVendor),
		truncate(singleLine(p.Description), colDescription))
	if selected {
		return SelectedStyle.Render("> " + line)
	}
	return "  " + line
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate shortens s to width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
