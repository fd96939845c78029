package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/rshade/storeview/internal/config"
)

const (
	tabwriterPadding = 2
	colWidthTitle    = 40
	colWidthType     = 20
	colWidthVendor   = 20
	yamlIndent       = 2
)

func renderListing(w io.Writer, format string, l listing) error {
	switch format {
	case config.FormatJSON:
		return renderListingJSON(w, l)
	case config.FormatNDJSON:
		return renderListingNDJSON(w, l)
	case config.FormatYAML:
		return renderListingYAML(w, l)
	default:
		return renderListingTable(w, l)
	}
}

func renderListingTable(w io.Writer, l listing) error {
	p := message.NewPrinter(language.English)

	total := 0
	for _, pg := range l.Pages {
		total += len(pg.Products)
	}
	if total == 0 {
		if _, err := fmt.Fprintln(w, "No products found"); err != nil {
			return err
		}
		return renderFooter(w, l)
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	if _, err := fmt.Fprintf(tw, "PAGE\tTITLE\tPRODUCT TYPE\tVENDOR\tCREATED\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "----\t-----\t------------\t------\t-------\n"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}
	for _, pg := range l.Pages {
		for _, prod := range pg.Products {
			if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
				pg.Page,
				truncateCell(prod.Title, colWidthTitle),
				dash(truncateCell(prod.ProductType, colWidthType)),
				dash(truncateCell(prod.Vendor, colWidthVendor)),
				dash(prod.CreatedAt),
			); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := p.Fprintf(w, "\n%d products on %d page(s), sorted by %s\n",
		total, len(l.Pages), l.Sort.Label()); err != nil {
		return err
	}
	return renderFooter(w, l)
}

func renderFooter(w io.Writer, l listing) error {
	var b strings.Builder
	if l.Query != "" {
		fmt.Fprintf(&b, "Search: %s\n", l.Query)
	}
	if n := len(l.Pages); n > 0 {
		last := l.Pages[n-1].PageMeta
		if last.HasPrevious && last.StartCursor != "" {
			fmt.Fprintf(&b, "Previous page: --before %s\n", last.StartCursor)
		}
		if last.HasNext && last.EndCursor != "" {
			fmt.Fprintf(&b, "Next page: --after %s\n", last.EndCursor)
		}
	}
	fmt.Fprintf(&b, "Link: %s\n", l.Link)
	_, err := io.WriteString(w, b.String())
	return err
}

func renderListingJSON(w io.Writer, l listing) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(l); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// renderListingNDJSON writes one product per line with no wrapper.
func renderListingNDJSON(w io.Writer, l listing) error {
	for _, pg := range l.Pages {
		for _, prod := range pg.Products {
			data, err := json.Marshal(prod)
			if err != nil {
				return fmt.Errorf("marshaling product: %w", err)
			}
			if _, err = fmt.Fprintf(w, "%s\n", data); err != nil {
				return fmt.Errorf("writing NDJSON line: %w", err)
			}
		}
	}
	return nil
}

func renderListingYAML(w io.Writer, l listing) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

func truncateCell(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
