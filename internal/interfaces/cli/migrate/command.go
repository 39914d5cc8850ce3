package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"warden/internal/infrastructure/config"
	"warden/internal/infrastructure/database"
	"warden/internal/infrastructure/migration"
	"warden/internal/infrastructure/persistence/models"
	"warden/internal/shared/logger"
)

var (
	env      string
	strategy string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Long: `Create or update the Warden tables.

The auto strategy derives tables from the models and works with every driver.
The goose strategy applies the versioned MySQL scripts embedded in the binary.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", migration.StrategyAuto, "Migration strategy (auto, goose)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, "release"); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	manager, err := migration.NewManager(strategy, cfg.Database.Driver)
	if err != nil {
		return err
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	log.Infow("running migrations",
		"environment", env,
		"strategy", strategy,
		"driver", cfg.Database.Driver)

	if err := manager.Migrate(database.Get(), models.All()...); err != nil {
		log.Errorw("migration failed", "error", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied (%s)\n", manager.GetStrategy().GetName())
	return nil
}
