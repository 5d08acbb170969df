package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Operate the microdrama catalog store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "configs/config.yaml", "config file")

	root.AddCommand(migrateCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(reindexCmd())
	root.AddCommand(backfillCmd())
	root.AddCommand(pingCmd())

	return root
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or drop catalog tables",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Create tables and indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrateUp(cmd.Context())
		},
	})

	var yes bool
	down := &cobra.Command{
		Use:   "down",
		Short: "Drop all catalog tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to drop tables without --yes")
			}
			return runMigrateDown(cmd.Context())
		},
	}
	down.Flags().BoolVar(&yes, "yes", false, "confirm dropping every table")
	cmd.AddCommand(down)

	return cmd
}

func seedCmd() *cobra.Command {
	var (
		shows    int
		episodes int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Wipe the catalog and insert demo shows, episodes and ratings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), cmd.OutOrStdout(), shows, episodes)
		},
	}

	cmd.Flags().IntVar(&shows, "shows", 20, "number of shows")
	cmd.Flags().IntVar(&episodes, "episodes", 50, "episodes per show")
	return cmd
}

func reindexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Bulk sync every show into the search index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReindex(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func backfillCmd() *cobra.Command {
	var (
		ids  []string
		seed int64
	)

	cmd := &cobra.Command{
		Use:   "backfill-playback-ids",
		Short: "Assign one of the given Mux playback ids to every episode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackfill(cmd.Context(), cmd.OutOrStdout(), ids, seed)
		},
	}

	cmd.Flags().StringSliceVar(&ids, "id", nil, "playback id to assign (repeatable)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default: current time)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check connectivity of every configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPing(cmd.Context(), cmd.OutOrStdout())
		},
	}
}
