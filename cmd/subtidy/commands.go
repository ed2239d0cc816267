package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/squash/subtidy/internal/config"
	"github.com/squash/subtidy/internal/dedupe"
	"github.com/squash/subtidy/internal/persistence"
	"github.com/squash/subtidy/internal/service"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run <directory>",
		Short: "Canonicalize one directory of subtitle files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			svc, store, err := buildService(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			outcome, err := svc.RunDir(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printOutcome(cmd, outcome)
			return nil
		},
	}
}

func newSweepCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Canonicalize every configured media directory once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			svc, store, err := buildService(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			svc.SweepAll(cmd.Context())
			return nil
		},
	}
}

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run scheduled sweeps until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			_, store, err := buildService(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			c := cron.New()
			scheduled := service.NewSweepService(*cfg, c, store)
			if err := scheduled.Schedule(cmd.Context()); err != nil {
				return fmt.Errorf("failed to schedule sweeps: %w", err)
			}
			c.Start()
			defer c.Stop()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig
			return nil
		},
	}
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded canonicalization runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := persistence.NewSQLiteStore(cfg.System.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, run := range runs {
				cmd.Printf("%s  %s  forced=%d exact=%d near=%d\n",
					run.StartedAt.Format("2006-01-02 15:04:05"),
					run.Directory,
					run.ForcedRemoved,
					run.ExactRemoved,
					run.NearRemoved,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	return cmd
}

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "init <path>",
		Short: "Write an annotated sample configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err == nil {
				return fmt.Errorf("refusing to overwrite %s", args[0])
			}
			return os.WriteFile(args[0], []byte(config.SampleConfig()), 0o644)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the sample configuration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(config.SampleConfig())
		},
	})

	return configCmd
}

func buildService(cfg *config.Config) (service.SweepService, *persistence.SQLiteStore, error) {
	store, err := persistence.NewSQLiteStore(cfg.System.DBPath)
	if err != nil {
		return service.SweepService{}, nil, fmt.Errorf("failed to open run history store: %w", err)
	}
	return service.NewSweepService(*cfg, nil, store), store, nil
}

func printOutcome(cmd *cobra.Command, outcome dedupe.Outcome) {
	report := func(label string, paths []string) {
		cmd.Printf("%s: %d\n", label, len(paths))
		for _, p := range paths {
			cmd.Printf("  %s\n", p)
		}
	}
	report("Forced removals", outcome.ForcedRemoved)
	report("Exact-duplicate removals", outcome.ExactRemoved)
	report("Near-duplicate removals", outcome.NearRemoved)
}
