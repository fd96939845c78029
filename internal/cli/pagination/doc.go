// Package pagination holds the cursor paging flags shared by list commands
// and the page metadata they print.
package pagination
