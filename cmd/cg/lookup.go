package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/citegraph/internal/export"
	"github.com/matsen/citegraph/internal/paper"
)

var (
	lookupSource string
	lookupBibTeX bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <doi>",
	Short: "Look up paper metadata without building a graph",
	Long: `Look up paper metadata without building a graph.

By default the full fallback chain is used. --source restricts the lookup to
a single provider, which is useful for checking what each one returns.

Examples:
  cg lookup 10.1109/5.771073
  cg lookup 10.1109/5.771073 --source crossref --human
  cg lookup 10.1109/5.771073 --bibtex >> refs.bib`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().StringVarP(&lookupSource, "source", "s", "all", "Source to query: s2, crossref, or all")
	lookupCmd.Flags().BoolVar(&lookupBibTeX, "bibtex", false, "Print the record as a BibTeX entry")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	adapters, err := sourcesFor(cfg, lookupSource)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	id, err := paper.Normalize(args[0])
	if err != nil {
		exitWithSearchError(err)
	}

	rec, err := newResolver(cfg, adapters).Resolve(cmd.Context(), id)
	if err != nil {
		exitWithSearchError(err)
	}

	if lookupBibTeX {
		fmt.Print(export.ToBibTeX(rec, id))
		return nil
	}

	if humanOutput {
		outputHuman("%s\n", truncateString(rec.Title, TitleMaxLen))
		if len(rec.Authors) > 0 {
			outputHuman("  Authors:    %s\n", truncateString(rec.AuthorsString(), TitleMaxLen))
		}
		if rec.Year > 0 {
			outputHuman("  Year:       %d\n", rec.Year)
		}
		if rec.URL != "" {
			outputHuman("  URL:        %s\n", rec.URL)
		}
		outputHuman("  ID:         %s\n", rec.ID)
		outputHuman("  Source:     %s\n", rec.Source)
		outputHuman("  References: %d\n", len(rec.LinkableReferences()))
		outputHuman("  Citations:  %d\n", len(rec.LinkableCitations()))
		return nil
	}
	return outputJSON(rec)
}
