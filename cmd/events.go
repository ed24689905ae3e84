package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/abhisek/studygenie/internal/store"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect recorded backend calls",
}

// openEvents opens the event log named by configuration.
func openEvents(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent backend calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		op, _ := cmd.Flags().GetString("op")

		s, err := openEvents(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryRequests(cmd.Context(), store.QueryOpts{Limit: limit, Operation: op})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No backend calls recorded.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-18s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Operation", "Method", "Status", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 80))

		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			status := "-"
			if e.Status > 0 {
				status = fmt.Sprint(e.Status)
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-18s  %-6s  %-6s  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Operation,
				e.Method,
				status,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var eventsViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full request and response of a call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openEvents(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetRequest(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)

		fmt.Fprintf(out, "ID:         %d\n", e.ID)
		fmt.Fprintf(out, "Time:       %s (%s)\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"), humanize.Time(e.Timestamp))
		fmt.Fprintf(out, "Operation:  %s\n", e.Operation)
		fmt.Fprintf(out, "Request:    %s %s\n", e.Method, e.Path)
		fmt.Fprintf(out, "Status:     %d\n", e.Status)
		fmt.Fprintf(out, "Latency:    %dms\n", e.LatencyMs)
		fmt.Fprintf(out, "Success:    %v\n", e.Success)
		if e.ErrorMessage != "" {
			fmt.Fprintf(out, "Error:      %s\n", e.ErrorMessage)
		}

		for _, part := range []struct{ title, body string }{
			{"REQUEST", e.RequestBody},
			{"RESPONSE", e.ResponseBody},
		} {
			fmt.Fprintln(out)
			fmt.Fprintln(out, sep)
			fmt.Fprintln(out, part.title)
			fmt.Fprintln(out, sep)
			if part.body == "" {
				fmt.Fprintln(out, "(not captured)")
				continue
			}
			fmt.Fprint(out, string(pretty.Pretty([]byte(part.body))))
		}
		return nil
	},
}

var eventsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show calls, failures and latency per operation",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openEvents(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		stats, err := s.EventRepo().UsageByOperation(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(stats) == 0 {
			fmt.Fprintln(out, "No backend calls recorded yet.")
			return nil
		}

		fmt.Fprintln(out, "Usage by Operation")
		fmt.Fprintln(out, strings.Repeat("─", 60))
		fmt.Fprintf(out, "%-20s  %8s  %8s  %8s  %8s\n", "Operation", "Calls", "Failed", "Rate", "Avg Ms")
		fmt.Fprintln(out, strings.Repeat("─", 60))

		var calls, failures int
		for _, st := range stats {
			fmt.Fprintf(out, "%-20s  %8s  %8s  %8s  %8d\n",
				st.Operation, humanize.Comma(int64(st.Calls)), humanize.Comma(int64(st.Failures)),
				successRate(st.Calls, st.Failures), st.AvgLatencyMs)
			calls += st.Calls
			failures += st.Failures
		}

		fmt.Fprintln(out, strings.Repeat("─", 60))
		fmt.Fprintf(out, "%-20s  %8s  %8s  %8s\n",
			"TOTAL", humanize.Comma(int64(calls)), humanize.Comma(int64(failures)), successRate(calls, failures))
		return nil
	},
}

var eventsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the most recent backend calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")
		if keep < 0 {
			return fmt.Errorf("--keep must not be negative, got %d", keep)
		}
		s, err := openEvents(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		removed, err := s.EventRepo().PruneRequests(cmd.Context(), keep)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s calls, kept at most %s.\n",
			humanize.Comma(removed), humanize.Comma(int64(keep)))
		return nil
	},
}

func successRate(calls, failures int) string {
	if calls == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", float64(calls-failures)/float64(calls)*100)
}

func init() {
	eventsListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	eventsListCmd.Flags().StringP("op", "o", "", "Filter by operation (e.g. study_plan, ask_doubt, system_status)")

	eventsPruneCmd.Flags().Int("keep", eventRetention, "Number of most recent calls to keep")

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsViewCmd)
	eventsCmd.AddCommand(eventsStatsCmd)
	eventsCmd.AddCommand(eventsPruneCmd)
}
