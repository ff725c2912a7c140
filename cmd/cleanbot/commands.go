package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"svw.info/cleanbot/internal/config"
	"svw.info/cleanbot/internal/domain"
	"svw.info/cleanbot/internal/generator"
	"svw.info/cleanbot/internal/infrastructure/storage"
	"svw.info/cleanbot/internal/ports"
	"svw.info/cleanbot/internal/search"
	"svw.info/cleanbot/internal/usecase"
	"svw.info/cleanbot/internal/validator"
)

// app carries what the persistent pre-run resolves for every command.
type app struct {
	configPath  string
	logLevel    string
	persistPath string

	cfg    config.Config
	logger *slog.Logger
	uc     *usecase.Service
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var save bool

	root := &cobra.Command{
		Use:   "cleanbot <depth-first|uniform-cost> <world-file>",
		Short: "Plan a route that cleans every dirty cell of a grid world",
		Long: `Plan a route that cleans every dirty cell of a grid world.

The world file holds the column count, the row count, then one line per row
using '#' for walls, '.' for floor, '*' for dirt and '@' for the robot.
Use "-" as the world file to read standard input.

Output is one action per line (N, S, E, W or V) followed by
"<n> nodes generated" and "<n> nodes expanded". When no plan exists only the
two statistics lines are printed.`,
		Args:          exactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlan(cmd, args[0], args[1], save)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug|info|warn|error (default from config)")
	root.PersistentFlags().StringVar(&a.persistPath, "persist-path", "", "plan archive directory (default from config)")
	root.Flags().BoolVar(&save, "save", false, "archive the plan under the persist path")

	root.SetFlagErrorFunc(usageError)
	root.AddCommand(newGenerateCmd(a), newPlansCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.persistPath != "" {
		cfg.PersistPath = a.persistPath
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: config.Level(cfg.LogLevel)}))

	a.uc = usecase.NewService(search.All(), generator.NewRandom(), validator.New(), storage.NewFS(cfg.PersistPath))
	return nil
}

func (a *app) runPlan(cmd *cobra.Command, algArg, worldPath string, save bool) error {
	alg, err := domain.ParseAlgorithm(algArg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	w, err := a.uc.LoadWorld(ctx, worldPath)
	if err != nil {
		return fmt.Errorf("reading world file: %w", err)
	}
	a.logger.Debug("world loaded", "path", worldPath, "columns", w.Columns, "rows", w.Rows, "dirty", len(w.Dirty))

	p, st, err := a.uc.Plan(ctx, alg, w, filepath.Base(worldPath))
	if err != nil {
		return err
	}
	a.logger.Info("search finished",
		"algorithm", alg,
		"found", p.Found,
		"cost", p.Cost,
		"generated", humanize.Comma(int64(st.Generated)),
		"expanded", humanize.Comma(int64(st.Expanded)),
		"dur", st.Duration.Round(time.Microsecond),
	)
	if err := writePlan(cmd.OutOrStdout(), p); err != nil {
		return err
	}

	if save {
		if err := a.uc.Save(ctx, p); err != nil {
			return fmt.Errorf("saving plan: %w", err)
		}
		a.logger.Info("plan saved", "id", p.ID, "dir", a.cfg.PersistPath)
	}
	return nil
}

// writePlan prints the actions, one per line, when a plan was found, then
// always the two statistics lines.
func writePlan(out io.Writer, p *domain.Plan) error {
	if p.Found {
		for _, act := range p.Actions {
			if _, err := fmt.Fprintln(out, act); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(out, "%d nodes generated\n%d nodes expanded\n", p.Generated, p.Expanded)
	return err
}

func newGenerateCmd(a *app) *cobra.Command {
	var opts ports.GenerateOptions
	var seed int64

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a random world whose dirt is reachable from the start",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			w, err := a.uc.Generate(cmd.Context(), seed, opts)
			if err != nil {
				return err
			}
			a.logger.Info("world generated", "seed", seed, "columns", w.Columns, "rows", w.Rows, "dirty", len(w.Dirty))
			_, err = io.WriteString(cmd.OutOrStdout(), w.String())
			return err
		},
	}
	cmd.Flags().IntVar(&opts.Columns, "cols", 8, "column count")
	cmd.Flags().IntVar(&opts.Rows, "rows", 6, "row count")
	cmd.Flags().IntVar(&opts.Dirt, "dirt", 4, "dirty cell count")
	cmd.Flags().Float64Var(&opts.WallRatio, "walls", 0.2, "probability that a cell is a wall, in [0,1)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default: current time)")
	return cmd
}

func newPlansCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List archived plans, newest first",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			metas, err := a.uc.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range metas {
				outcome := fmt.Sprintf("cost %d", m.Cost)
				if !m.Found {
					outcome = "no plan"
				}
				created := humanize.Time(time.Unix(0, m.CreatedAt))
				if _, err := fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Algorithm, m.WorldName, outcome, created); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
