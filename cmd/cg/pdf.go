package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/citegraph/internal/pdf"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf <file>",
	Short: "Build the citation graph of a paper from its PDF",
	Long: `Build the citation graph of a paper from its PDF.

The first pages of the PDF are scanned for a DOI, which is then resolved
exactly like 'cg graph'.

Examples:
  cg pdf paper.pdf --human
  cg pdf paper.pdf --html graph.html --open`,
	Args: cobra.ExactArgs(1),
	RunE: runPDF,
}

func init() {
	addGraphFlags(pdfCmd)
	rootCmd.AddCommand(pdfCmd)
}

func runPDF(cmd *cobra.Command, args []string) error {
	doi, err := pdf.ExtractDOI(args[0])
	if err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			exitWithError(ExitError, "PDF not found: %s", args[0])
		case errors.Is(err, pdf.ErrNoDOI):
			exitWithError(ExitEmptyQuery, "no DOI found in %s", args[0])
		default:
			exitWithError(ExitError, "reading %s: %v", args[0], err)
		}
	}
	logger.Debug("extracted DOI from PDF", zap.String("file", args[0]), zap.String("doi", doi.String()))

	searcher, _, cfg := mustNewSearcher()
	return searchAndReport(cmd.Context(), searcher, doi.String(), layoutOrDefault(cfg.Layout))
}
