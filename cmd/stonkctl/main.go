package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"stonkbot/internal/board"
	"stonkbot/internal/config"
	"stonkbot/internal/store"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	dataDir := cfg.DataDir

	root := &cobra.Command{
		Use:          "stonkctl",
		Short:        "Leaderboard operations console",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", dataDir, "leaderboard data directory")

	root.AddCommand(
		newTopCmd(&dataDir),
		newUserCmd(&dataDir),
		newSummaryCmd(&dataDir),
		newBaselineCmd(&dataDir),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newStore(dataDir *string) *store.Store {
	return store.New(strings.TrimSpace(*dataDir))
}

func newTopCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "top [count]",
		Short: "Show the top of the current leaderboard",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := board.MaxTopN
			if len(args) > 0 {
				v, err := strconv.Atoi(strings.TrimSpace(args[0]))
				if err != nil {
					return fmt.Errorf("invalid count %q", args[0])
				}
				count = v
			}
			snap, err := newStore(dataDir).ReadLatest()
			if err != nil {
				return err
			}
			renderTop(board.TopN(snap, count))
			return nil
		},
	}
}

func newUserCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "user <username>",
		Short: "Show one user's balance and holdings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.TrimSpace(args[0])
			snap, err := newStore(dataDir).ReadLatest()
			if err != nil {
				return err
			}
			rec, ok := snap.User(username)
			if !ok {
				return fmt.Errorf("user %q not found", username)
			}
			renderUser(username, rec)
			return nil
		},
	}
}

func newSummaryCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Compare the morning baseline against the latest capture",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := newStore(dataDir)
			morning, err := st.ReadMorning()
			if err != nil {
				return fmt.Errorf("morning baseline: %w", err)
			}
			latest, err := st.ReadLatest()
			if err != nil {
				return err
			}
			summary, err := board.CompareDay(morning, latest)
			if err != nil {
				return err
			}
			renderSummary(summary)
			return nil
		},
	}
}

func newBaselineCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "baseline",
		Short: "Capture the latest leaderboard as today's morning baseline",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := newStore(dataDir)
			latest, err := st.ReadLatest()
			if err != nil {
				return err
			}
			if err := st.WriteMorning(latest); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Baseline captured for %d users.", len(latest)))
			return nil
		},
	}
}
