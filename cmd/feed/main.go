// Command feed drives a running pitchside server with generated match
// traffic and prints the resulting summary.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/pitchside/internal/feed"
	"github.com/okian/pitchside/pkg/logger"
)

func main() {
	opts := feed.Options{}
	verbose := false

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Generate match traffic against a pitchside server",
		Long: `feed starts matches, posts absolute score updates, and finishes them
against a running pitchside server, then prints the final summary.
Useful for demos and for watching the /live websocket feed move.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Init(); err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}
			if verbose {
				_ = logger.SetLevelString("debug")
			}
			if opts.Seed == 0 {
				opts.Seed = time.Now().UnixNano()
			}

			runner := feed.NewRunner(opts, logger.Named("feed"))
			lines, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(lines) == 0 {
				fmt.Fprintln(out, "scoreboard is empty")
				return nil
			}
			fmt.Fprintln(out, "scoreboard:")
			for _, line := range lines {
				fmt.Fprintln(out, "  "+line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.BaseURL, "url", "http://localhost:8090", "base URL of the pitchside server")
	cmd.Flags().IntVar(&opts.Matches, "matches", 5, "number of matches to play")
	cmd.Flags().IntVar(&opts.Steps, "steps", 6, "score updates per match")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 200*time.Millisecond, "pause between score updates")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "HTTP request timeout")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().BoolVar(&opts.KeepRunning, "keep-running", false, "leave matches on the board instead of finishing them")
	cmd.Flags().BoolVar(&opts.UniqueNames, "unique-names", true, "suffix team names so repeated runs never collide")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
