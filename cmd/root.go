package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studygenie",
	Short: "AI study planner in the terminal",
	Long: "StudyGenie: terminal client for the StudyGenie multi-agent backend: " +
		"study plans, an AI tutor, progress analysis, notes and practice questions.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Not a terminal; the interactive app needs one. Use a subcommand instead.")
			return cmd.Help()
		}
		return runApp(cmd)
	},
}

// Execute runs the command line. ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file (default $XDG_CONFIG_HOME/studygenie/config.yaml)")
	pf.String("env-file", "", "Path to a dotenv file (default .env)")
	pf.String("base-url", "", "Backend base URL (overrides STUDYGENIE_BASE_URL)")
	pf.String("db", "", "Path to the SQLite event log, or :memory: (overrides STUDYGENIE_DB)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.Bool("demo", false, "Answer every request from built-in demo data")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(mcqsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(versionCmd)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
