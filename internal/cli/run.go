package cli

import (
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/hupe1980/agentmesh/core"
	"github.com/spf13/cobra"
)

var (
	runSessionID   string
	runMetricsAddr string
)

var runCmd = &cobra.Command{
	Use:   "run [query]",
	Short: "Run a research query through the advisor",
	Long: `Run a single research query through the financial advisor. The advisor
delegates to its analyst agents, prints its advice, and saves the full
report to the output directory.

When no query argument is given, the query is read from stdin.

Example:
  finadvisor run "Should I invest in NVDA right now?"`,
	Args: cobra.ArbitraryArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runSessionID, "session", "", "session id to continue (default: a fresh session)")
	runCmd.Flags().StringVar(&runMetricsAddr, "metrics-addr", "", "expose Prometheus metrics on this address (e.g. :9090)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read query from stdin: %w", err)
		}
		query = strings.TrimSpace(string(data))
	}
	if query == "" {
		return fmt.Errorf("query is required")
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := runMetricsAddr
	if addr == "" {
		addr = app.cfg.Metrics.Addr
	}
	app.serveMetrics(ctx, addr)

	sessionID := runSessionID
	if sessionID == "" {
		sessionID = newSessionID("sess")
	}

	fmt.Printf("Researching: %s\n\n", query)

	res, err := app.research(ctx, sessionID, query)
	if err != nil {
		return err
	}

	if res.Answer != "" {
		fmt.Printf("\n%s\n", res.Answer)
	}

	return nil
}

// printEvent prints run progress: one line per completed agent response.
func (a *app) printEvent(ev core.Event) {
	if ev.IsPartial() || ev.Content == nil {
		return
	}

	for _, call := range ev.GetFunctionCalls() {
		fmt.Printf("[%s] -> %s\n", ev.Author, call.Name)
	}

	if ev.Author == "user" || !ev.IsFinalResponse() {
		return
	}

	var sb strings.Builder
	for _, part := range ev.Content.Parts {
		if tp, ok := part.(core.TextPart); ok {
			sb.WriteString(tp.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return
	}

	a.log.Debug().Str("author", ev.Author).Int("chars", len(text)).Msg("agent response")
	fmt.Printf("[%s] %s\n", ev.Author, truncate(text, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// Back off to a rune boundary so the cut never splits a character.
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
