package cli

import (
	"fmt"
	"strings"

	"github.com/rshade/storeview/internal/catalog"
	"github.com/rshade/storeview/internal/config"
	"github.com/rshade/storeview/internal/urlstate"
)

// openView restores the shareable view state: from link when given,
// otherwise from the remembered state file. A sort flag is applied on top.
// With persist set, every later change is written back to the state file.
func openView(cfg *config.Config, link, sortFlag string, persist bool) (*urlstate.Store, error) {
	remember := cfg.View.Remember && cfg.View.StateFile != ""

	var (
		store *urlstate.Store
		err   error
	)
	if link != "" {
		store, err = urlstate.ParseLink(link)
	} else {
		store, err = urlstate.New(cfg.Store.AppURL)
	}
	if err != nil {
		return nil, err
	}

	if link == "" && remember {
		st, loadErr := urlstate.Load(cfg.View.StateFile)
		if loadErr != nil {
			logger.Warn().Err(loadErr).Msg("ignoring saved view state")
		}
		store.Set(st)
	}

	if persist && remember {
		path := cfg.View.StateFile
		store.OnChange(func(st urlstate.State) {
			if saveErr := urlstate.Save(path, st); saveErr != nil {
				logger.Warn().Err(saveErr).Str("path", path).Msg("saving view state")
			}
		})
	}

	if sortFlag != "" {
		sort, sortErr := parseSortFlag(sortFlag)
		if sortErr != nil {
			return nil, sortErr
		}
		store.Set(urlstate.FromSort(sort))
	}

	logger.Debug().Str("link", store.Link()).Msg("view state restored")
	return store, nil
}

func parseSortFlag(value string) (catalog.Sort, error) {
	choice, ok := catalog.ParseSortChoice(value)
	if !ok {
		return catalog.Sort{}, fmt.Errorf("%w %q (choose one of: %s)", ErrUnknownSort, value, sortChoiceNames())
	}
	sort, _ := catalog.Encode(choice)
	return sort, nil
}

func sortChoiceNames() string {
	choices := catalog.SortChoices()
	names := make([]string, 0, len(choices))
	for _, c := range choices {
		names = append(names, c.Alias())
	}
	return strings.Join(names, ", ")
}
