package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/citegraph/internal/server"
	"github.com/matsen/citegraph/internal/viz"
)

var (
	serveAddr   string
	serveLayout string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the citation graph explorer over HTTP",
	Long: `Serve the citation graph explorer over HTTP.

Routes:
  GET /                 Input page that draws the graph in the browser
  GET /api/graph?q=DOI  Record and graph as JSON
  GET /healthz          Health check

Examples:
  cg serve
  cg serve --addr :9000 --layout breadthfirst`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().StringVar(&serveLayout, "layout", "", "Graph layout for the page (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	searcher, resolver, cfg := mustNewSearcher()

	addr := cfg.ServeAddr
	if serveAddr != "" {
		addr = serveAddr
	}
	layout := cfg.Layout
	if serveLayout != "" {
		layout = serveLayout
	}
	if err := viz.ValidateLayout(layout); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	srv := server.New(searcher,
		server.WithLogger(logger),
		server.WithLayout(layout),
		server.WithSources(resolver.Sources()),
	)

	if humanOutput {
		outputHuman("Serving on http://%s (Ctrl-C to stop)\n", addr)
	} else {
		outputJSON(StatusResponse{Status: "serving", Addr: addr})
	}

	if err := srv.ListenAndServe(cmd.Context(), addr); err != nil {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Addr   string `json:"addr,omitempty"`
	Path   string `json:"path,omitempty"`
}
