package main

import (
	"context"
	"fmt"
	"strings"

	"medexam_backend/internal/app"
	"medexam_backend/internal/config"
	"medexam_backend/internal/model"
	"medexam_backend/internal/util"
	"medexam_backend/pkg/database"
	"medexam_backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "medexam",
		Short:        "Soft-delete and restore exam papers, questions and their answer content",
		SilenceUsage: true,
	}
	f := root.PersistentFlags()
	f.String("config", "configs", "Directory containing config.yaml")
	f.Bool("migrate", false, "Run database migrations before the command")
	f.String("metrics-addr", "", "Expose Prometheus metrics on this address while running")

	root.AddCommand(migrateCmd(), paperCmd(), questionCmd(), childCmd())
	return root
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the content tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(_ context.Context, a *app.App) error {
				return database.Migrate(a.DB)
			})
		},
	}
}

func paperCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paper",
		Short: "Paper operations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "delete <id>...",
			Short: "Soft-delete papers with every question and child beneath them",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runForIDs(cmd, args, "paper", func(ctx context.Context, a *app.App, id uint) error {
					return a.Papers.Delete(ctx, id)
				})
			},
		},
		&cobra.Command{
			Use:   "restore <id>...",
			Short: "Restore soft-deleted papers and their content",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runForIDs(cmd, args, "paper", func(ctx context.Context, a *app.App, id uint) error {
					return a.Papers.Restore(ctx, id)
				})
			},
		},
	)
	return cmd
}

func questionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "question",
		Short: "Question operations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>...",
		Short: "Soft-delete questions and their choices, parts or stations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForIDs(cmd, args, "question", func(ctx context.Context, a *app.App, id uint) error {
				return a.Questions.Delete(ctx, id)
			})
		},
	})
	return cmd
}

func childCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "child",
		Short: "Choice, part and station operations",
	}
	retire := &cobra.Command{
		Use:   "retire <id>...",
		Short: "Remove single choices, parts or stations from live questions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, status, err := retireFlags(cmd)
			if err != nil {
				return err
			}
			return runForIDs(cmd, args, "child", func(ctx context.Context, a *app.App, id uint) error {
				return a.Questions.RetireChild(ctx, variant, id, status)
			})
		},
	}
	retire.Flags().StringP("type", "t", "", "Question type owning the children (MCQ, SAQ, OSCE, SPOT)")
	retire.Flags().StringP("status", "s", string(model.ResponseObsolete), "Status for affected responses (OBSOLETE, DELETED)")
	_ = retire.MarkFlagRequired("type")
	cmd.AddCommand(retire)
	return cmd
}

func retireFlags(cmd *cobra.Command) (model.QuestionType, model.ResponseStatus, error) {
	typ, _ := cmd.Flags().GetString("type")
	st, _ := cmd.Flags().GetString("status")
	variant := model.QuestionType(strings.ToUpper(strings.TrimSpace(typ)))
	if !variant.Valid() {
		return "", "", fmt.Errorf("invalid --type %q: %w", typ, util.ErrUnknownQuestionType)
	}
	status := model.ResponseStatus(strings.ToUpper(strings.TrimSpace(st)))
	if status != model.ResponseObsolete && status != model.ResponseDeleted {
		return "", "", fmt.Errorf("invalid --status %q: %w", st, util.ErrInvalidResponseStatus)
	}
	return variant, status, nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if migrate, _ := cmd.Flags().GetBool("migrate"); migrate || cmd.Name() == "migrate" {
		cfg.ForceMigrate = true
	}
	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		cfg.Metrics.Addr = addr
	}
	return cfg, nil
}

func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.NewApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	logger.Log = logger.Log.With(zap.String("invocation_id", uuid.New().String()))
	return fn(ctx, a)
}

func runForIDs(cmd *cobra.Command, args []string, entity string, op func(ctx context.Context, a *app.App, id uint) error) error {
	ids, err := util.ParseIDList(args)
	if err != nil {
		return err
	}
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		b := newBatch(a.Config.Batch)
		err := b.run(ctx, ids, func(ctx context.Context, id uint) error {
			return op(ctx, a, id)
		})
		if err != nil && util.IsNotFound(err) {
			return fmt.Errorf("%s not found: %w", entity, err)
		}
		return err
	})
}
