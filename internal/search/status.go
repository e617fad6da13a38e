package search

import (
	"errors"
	"fmt"

	"github.com/matsen/citegraph/internal/paper"
	"github.com/matsen/citegraph/internal/resolve"
	"github.com/matsen/citegraph/internal/viz"
)

// StatusMessage renders the outcome of a search as one human-readable line.
func StatusMessage(res *Result, err error) string {
	if err != nil {
		var resErr *resolve.ResolutionError
		switch {
		case errors.Is(err, paper.ErrEmptyQuery):
			return "Please enter a DOI."
		case errors.As(err, &resErr) && resErr.AllNotFound():
			return fmt.Sprintf("No paper found for %s (%s).", resErr.ID, resErr.Summary())
		case errors.As(err, &resErr) && len(resErr.Failures) == 0:
			return fmt.Sprintf("Could not look up %s: no sources configured.", resErr.ID)
		case errors.As(err, &resErr):
			return fmt.Sprintf("Could not look up %s (%s).", resErr.ID, resErr.Summary())
		default:
			return "Search failed: " + err.Error()
		}
	}
	if res == nil || res.Record == nil {
		return "No result."
	}

	counts := map[viz.Role]int{}
	if res.Graph != nil {
		counts = res.Graph.CountByRole()
	}
	return fmt.Sprintf("Loaded %q from %s: %s, %s.",
		res.Record.Title,
		res.Record.Source,
		plural(counts[viz.RoleReference], "reference"),
		plural(counts[viz.RoleCitation], "citation"),
	)
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
