package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/citegraph/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration and where it is read from.

Values come from defaults, then ~/.config/citegraph/config.yml (or
$XDG_CONFIG_HOME/citegraph/config.yml), then the environment:
  S2_API_KEY          Semantic Scholar API key
  CROSSREF_MAILTO     Contact address for the Crossref polite pool
  CITEGRAPH_TIMEOUT   Per-source timeout, e.g. 10s

A .env file in the current directory is loaded first.
The API key is masked in the output.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	Path   string         `json:"path"`
	Config *config.Config `json:"config"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig().Redacted()
	path := config.Path()

	if humanOutput {
		outputHuman("config file:       %s\n", path)
		outputHuman("s2_api_key:        %s\n", orNone(cfg.S2APIKey))
		outputHuman("s2_base_url:       %s\n", cfg.S2BaseURL)
		outputHuman("crossref_base_url: %s\n", cfg.CrossrefBaseURL)
		outputHuman("crossref_mailto:   %s\n", orNone(cfg.CrossrefMailto))
		outputHuman("timeout:           %s\n", cfg.Timeout)
		if cfg.RateLimit > 0 {
			outputHuman("rate_limit:        %g/s\n", cfg.RateLimit)
		} else {
			outputHuman("rate_limit:        provider default\n")
		}
		outputHuman("serve_addr:        %s\n", cfg.ServeAddr)
		outputHuman("layout:            %s\n", cfg.Layout)
		return nil
	}
	return outputJSON(ConfigResponse{Path: path, Config: cfg})
}

func orNone(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
