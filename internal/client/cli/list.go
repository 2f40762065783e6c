package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/evently/internal/client/catalog"
	"github.com/dmitrijs2005/evently/internal/client/form"
	"github.com/dmitrijs2005/evently/internal/client/models"
	"github.com/gosuri/uitable"
)

const dateLayout = "Jan 2, 2006"

// listFlags end a multi-word search. Any other token after -q, including one
// starting with '-', is search text.
var listFlags = map[string]struct{}{
	"-q": {}, "-search": {},
	"-c": {}, "-category": {},
	"-s": {}, "-sort": {},
}

// parseListArgs applies list arguments on top of state. Search text is used
// exactly as given; quote it to keep runs of spaces.
//
//	-q text...   search text; every token up to the next list flag
//	-q=text      search text taken verbatim, even if it looks like a flag
//	-q           with nothing after it clears the search
//	-c category  category name or "all"
//	-s sort      newest, oldest, price-asc, price-desc, name-asc, name-desc
//	reset        back to the default state
func parseListArgs(args []string, state catalog.State) (catalog.State, error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if name, value, ok := strings.Cut(arg, "="); ok && (name == "-q" || name == "-search") {
			state.SearchText = value
			continue
		}

		switch arg {
		case "reset":
			state = catalog.DefaultState()

		case "-q", "-search":
			var words []string
			for i+1 < len(args) {
				if _, flag := listFlags[args[i+1]]; flag {
					break
				}
				words = append(words, args[i+1])
				i++
			}
			state.SearchText = strings.Join(words, " ")

		case "-c", "-category":
			if i+1 >= len(args) {
				return state, fmt.Errorf("%s needs a value", arg)
			}
			i++
			c, err := catalog.ParseCategoryFilter(args[i])
			if err != nil {
				return state, err
			}
			state.Category = c

		case "-s", "-sort":
			if i+1 >= len(args) {
				return state, fmt.Errorf("%s needs a value", arg)
			}
			i++
			k, err := catalog.ParseSortKey(args[i])
			if err != nil {
				return state, err
			}
			state.Sort = k

		default:
			return state, fmt.Errorf("unknown argument %q", arg)
		}
	}
	return state, nil
}

// List updates the list view state from args, then fetches and shows the
// catalog.
func (a *App) List(ctx context.Context, args []string) error {
	state, err := parseListArgs(args, a.state)
	if err != nil {
		a.say(err.Error())
		a.say(listUsage())
		return err
	}
	a.state = state
	return a.fetchAndRender(ctx)
}

// Retry repeats the list with the current state. It only does so after a
// failed fetch.
func (a *App) Retry(ctx context.Context, _ []string) error {
	if !a.listFailed {
		a.say("Nothing to retry. Type 'list' to show services.")
		return nil
	}
	return a.fetchAndRender(ctx)
}

func (a *App) fetchAndRender(ctx context.Context) error {
	listing, err := a.catalogService.List(ctx, a.state)
	if err != nil {
		a.listFailed = true
		a.log.Warn(ctx, "catalog fetch failed", "err", err)
		a.say("Failed to load services")
		a.say("Type 'retry' to try again.")
		return err
	}
	a.listFailed = false

	a.say(describeState(a.state))
	if msg := listing.Summary.Empty(); msg != "" {
		a.say(msg)
		return nil
	}

	a.say(renderTable(listing.Services))
	a.notify("Showing %d of %d services", listing.Summary.Shown, listing.Summary.Total)
	return nil
}

func renderTable(records []models.ServiceRecord) string {
	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("ID", "NAME", "CATEGORY", "PRICE", "ADDED")
	for _, r := range records {
		table.AddRow(r.ID, r.Name, r.Category, form.FormatPrice(r.BasePrice), r.CreatedAt.Format(dateLayout))
	}
	return table.String()
}

func describeState(s catalog.State) string {
	parts := []string{"sort: " + string(s.Sort)}
	if s.Category != catalog.All && s.Category != "" {
		parts = append(parts, "category: "+string(s.Category))
	}
	if s.SearchText != "" {
		parts = append(parts, fmt.Sprintf("search: %q", s.SearchText))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func listUsage() string {
	keys := make([]string, 0, len(catalog.SortKeys))
	for _, k := range catalog.SortKeys {
		keys = append(keys, string(k))
	}
	cats := []string{string(catalog.All)}
	for _, c := range models.Categories {
		cats = append(cats, string(c))
	}
	return "Usage: list [-q text] [-c " + strings.Join(cats, "|") + "] [-s " + strings.Join(keys, "|") + "] [reset]"
}
