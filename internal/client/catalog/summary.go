package catalog

// Summary describes the outcome of a query for the list header.
type Summary struct {
	Total   int
	Shown   int
	Filters bool
}

func Summarize(all, shown int, state State) Summary {
	return Summary{Total: all, Shown: shown, Filters: state.Filtering()}
}

// Empty returns the message for an empty list, or "" when something is shown.
// An empty catalog and an over-narrow filter read differently.
func (s Summary) Empty() string {
	switch {
	case s.Shown > 0:
		return ""
	case s.Total == 0:
		return "No services available yet"
	case s.Filters:
		return "No services match your filters"
	default:
		return "No services to show"
	}
}
