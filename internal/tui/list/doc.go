// Package listview renders a scrolling, selectable list inside a Bubble Tea
// program. Only the rows that fit the viewport are rendered; the selection
// is always kept visible.
package listview
