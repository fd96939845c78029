package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Page limits for one invocation.
const (
	DefaultPages = 1
	MinPages     = 1
	MaxPages     = 100
)

// Validation errors.
var (
	ErrInvalidPages     = fmt.Errorf("pages must be between %d and %d", MinPages, MaxPages)
	ErrMixedDirections  = errors.New("cannot use both --after and --before")
	ErrEmptyCursorValue = errors.New("cursor must not be empty")
)

// CursorParams are the --after, --before and --pages flags.
type CursorParams struct {
	After  string
	Before string
	Pages  int
}

// Register adds the flags to cmd.
func (p *CursorParams) Register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.After, "after", "", "start after this cursor (forward paging)")
	cmd.Flags().StringVar(&p.Before, "before", "", "start before this cursor (backward paging)")
	cmd.Flags().IntVar(&p.Pages, "pages", DefaultPages, "number of pages to fetch")
}

// Validate checks the flag combination. changed reports whether a flag was
// given explicitly, so that "--after ''" is rejected.
func (p *CursorParams) Validate(changed func(name string) bool) error {
	if p.Pages < MinPages || p.Pages > MaxPages {
		return ErrInvalidPages
	}
	if p.After != "" && p.Before != "" {
		return ErrMixedDirections
	}
	if changed != nil {
		if changed("after") && strings.TrimSpace(p.After) == "" {
			return fmt.Errorf("--after: %w", ErrEmptyCursorValue)
		}
		if changed("before") && strings.TrimSpace(p.Before) == "" {
			return fmt.Errorf("--before: %w", ErrEmptyCursorValue)
		}
	}
	return nil
}

// Backward reports whether paging runs toward earlier pages.
func (p *CursorParams) Backward() bool {
	return p.Before != ""
}

// Cursors returns the starting cursors as the controller expects them.
func (p *CursorParams) Cursors() (after, before *string) {
	if p.After != "" {
		a := p.After
		after = &a
	}
	if p.Before != "" {
		b := p.Before
		before = &b
	}
	return after, before
}
