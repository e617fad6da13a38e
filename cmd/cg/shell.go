package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/citegraph/internal/search"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactively search DOIs, one per line",
	Long: `Interactively search DOIs, one per line.

Each line starts a new search without waiting for the previous one. Only the
latest search is reported: if an older search finishes after a newer one was
entered, its result is dropped. Type 'quit' or send EOF to leave.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// ShellOutcome is one JSON line printed by the shell.
type ShellOutcome struct {
	Token  uint64         `json:"token"`
	Query  string         `json:"query"`
	Status string         `json:"status"`
	Result *search.Result `json:"result,omitempty"`
	Error  *ErrorResponse `json:"error,omitempty"`
}

func runShell(cmd *cobra.Command, args []string) error {
	searcher, _, _ := mustNewSearcher()
	return runShellLoop(cmd.Context(), searcher, cmd.InOrStdin(), cmd.OutOrStdout())
}

// runShellLoop reads queries from in until EOF or "quit" and reports current
// outcomes to out.
func runShellLoop(ctx context.Context, searcher *search.Searcher, in io.Reader, out io.Writer) error {
	session := search.NewSession(searcher, func(o search.Outcome) {
		printOutcome(out, o)
	})

	if humanOutput {
		fmt.Fprintln(out, "Enter a DOI per line; 'quit' to exit.")
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			break
		}
		session.Submit(ctx, line)
	}
	session.Wait()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if n := session.Discarded(); n > 0 {
		fmt.Fprintf(os.Stderr, "%d stale result(s) discarded\n", n)
	}
	return nil
}

func printOutcome(out io.Writer, o search.Outcome) {
	status := search.StatusMessage(o.Result, o.Err)

	if humanOutput {
		fmt.Fprintf(out, "[%d] %s\n", o.Token, status)
		return
	}

	line := ShellOutcome{Token: o.Token, Query: o.Query, Status: status, Result: o.Result}
	if o.Err != nil {
		line.Error = &ErrorResponse{Error: status, Failures: failureResults(o.Err)}
	}
	if err := json.NewEncoder(out).Encode(line); err != nil {
		fmt.Fprintf(os.Stderr, "error: encoding result: %v\n", err)
	}
}
