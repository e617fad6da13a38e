package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/citegraph/internal/paper"
	"github.com/matsen/citegraph/internal/search"
	"github.com/matsen/citegraph/internal/viz"
)

var (
	graphHTML   string
	graphLayout string
	graphOpen   bool
)

func init() {
	addGraphFlags(graphCmd)
	rootCmd.AddCommand(graphCmd)
}

// addGraphFlags registers the rendering flags shared by graph and pdf.
func addGraphFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&graphHTML, "html", "o", "", "Write an interactive HTML visualization to this file")
	cmd.Flags().StringVar(&graphLayout, "layout", "", "Layout algorithm: force, circle, grid, or breadthfirst (default from config)")
	cmd.Flags().BoolVar(&graphOpen, "open", false, "Open the HTML visualization in a browser (requires --html)")
}

var graphCmd = &cobra.Command{
	Use:   "graph <doi>",
	Short: "Resolve a DOI and build its citation graph",
	Long: `Resolve a DOI and build its citation graph.

The DOI may be bare or prefixed with https://doi.org/ or doi:.
Semantic Scholar is tried first; Crossref is used if it fails, in which
case the graph contains only the paper itself.

Examples:
  cg graph 10.1109/5.771073
  cg graph https://doi.org/10.1038/nature12373 --human
  cg graph 10.1109/5.771073 --html graph.html --layout circle --open`,
	Args: cobra.ExactArgs(1),
	RunE: runGraph,
}

// GraphResult is the JSON output for the graph command.
type GraphResult struct {
	*search.Result
	Status string `json:"status"`
	HTML   string `json:"html,omitempty"`
}

func runGraph(cmd *cobra.Command, args []string) error {
	searcher, _, cfg := mustNewSearcher()
	return searchAndReport(cmd.Context(), searcher, args[0], layoutOrDefault(cfg.Layout))
}

func layoutOrDefault(configured string) string {
	if graphLayout != "" {
		return graphLayout
	}
	return configured
}

// searchAndReport runs one search and prints the record and graph.
func searchAndReport(ctx context.Context, searcher *search.Searcher, raw, layout string) error {
	if err := viz.ValidateLayout(layout); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if graphOpen && graphHTML == "" {
		exitWithError(ExitError, "--open requires --html")
	}
	res, err := searcher.Search(ctx, raw)
	if err != nil {
		exitWithSearchError(err)
	}

	result := GraphResult{Result: res, Status: search.StatusMessage(res, nil)}

	if graphHTML != "" {
		html, err := viz.GenerateHTML(res.Graph, viz.HTMLOptions{Layout: layout})
		if err != nil {
			return fmt.Errorf("generating HTML: %w", err)
		}
		if err := os.WriteFile(graphHTML, []byte(html), 0644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		result.HTML = graphHTML

		if graphOpen {
			if err := viz.Open(graphHTML); err != nil {
				return fmt.Errorf("opening visualization: %w", err)
			}
		}
	}

	if humanOutput {
		printGraphHuman(result)
		return nil
	}
	return outputJSON(result)
}

func printGraphHuman(r GraphResult) {
	rec := r.Record
	outputHuman("%s\n", r.Status)
	outputHuman("\n%s\n", truncateString(rec.Title, TitleMaxLen))
	if len(rec.Authors) > 0 {
		outputHuman("  Authors: %s\n", truncateString(rec.AuthorsString(), TitleMaxLen))
	}
	if rec.Year > 0 {
		outputHuman("  Year:    %d\n", rec.Year)
	}
	if rec.URL != "" {
		outputHuman("  URL:     %s\n", rec.URL)
	}
	outputHuman("  ID:      %s (%s)\n", rec.ID, rec.Source)

	printRelated("References", rec.LinkableReferences())
	printRelated("Cited by", rec.LinkableCitations())

	outputHuman("\nGraph: %d nodes, %d edges\n", len(r.Graph.Nodes), len(r.Graph.Edges))
	if r.HTML != "" {
		outputHuman("Visualization written to %s\n", r.HTML)
	}
}

func printRelated(heading string, related []paper.Related) {
	if len(related) == 0 {
		return
	}
	outputHuman("\n%s (%d):\n", heading, len(related))
	for i, rel := range related {
		if i == RelatedMaxShown {
			outputHuman("  ... and %d more\n", len(related)-RelatedMaxShown)
			break
		}
		title := rel.Title
		if title == "" {
			title = viz.UntitledLabel
		}
		outputHuman("  - %s\n", truncateString(title, TitleMaxLen))
	}
}
