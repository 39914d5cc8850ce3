// Package license holds the operator shortcuts for license management that
// do not need a running server.
package license

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"warden/internal/application/identity"
	licenseapp "warden/internal/application/license"
	"warden/internal/infrastructure/auth"
	"warden/internal/infrastructure/config"
	"warden/internal/infrastructure/database"
	"warden/internal/infrastructure/repository"
	"warden/internal/shared/db"
	"warden/internal/shared/logger"
)

var (
	env       string
	daysValid int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "license",
		Short: "Issue and manage licenses",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newIssueCommand(),
		newStatusCommand(),
		newListCommand(),
	)

	return cmd
}

func newIssueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a new ACTIVE license",
		Args:  cobra.NoArgs,
		RunE:  runIssue,
	}

	cmd.Flags().IntVarP(&daysValid, "days", "d", 0, "Days until expiry (0 issues a permanent license)")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status KEY STATUS",
		Short: "Set the status of a license",
		Long:  `Set the status of a license. Any text is stored; only ACTIVE licenses verify.`,
		Args:  cobra.ExactArgs(2),
		RunE:  runStatus,
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all licenses",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
}

func initService() (*licenseapp.Service, func(), error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, "release"); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	gdb := database.Get()
	timeout := cfg.Database.QueryTimeout()

	resolver := identity.NewResolver(
		repository.NewCustomerRepository(gdb, timeout),
		repository.NewPanelAdminRepository(gdb, timeout),
		log.Named("identity"),
	)
	svc := licenseapp.NewService(
		repository.NewLicenseRepository(gdb, timeout, log),
		db.NewTransactionManager(gdb),
		auth.NewAssertionSigner(cfg.License.SigningSecret),
		resolver,
		cfg.License.KeyPrefix,
		log.Named("license"),
	)

	return svc, func() { _ = database.Close() }, nil
}

func runIssue(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := initService()
	if err != nil {
		return err
	}
	defer closeDB()

	lic, err := svc.Issue(context.Background(), daysValid)
	if err != nil {
		return err
	}

	expires := "never"
	if lic.ExpiresAt != nil {
		expires = lic.ExpiresAt.Format(time.RFC3339)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\texpires: %s\n", lic.LicenseKey, expires)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := initService()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := svc.SetStatus(context.Background(), args[0], args[1]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], args[1])
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := initService()
	if err != nil {
		return err
	}
	defer closeDB()

	licenses, err := svc.List(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tSTATUS\tEXPIRES\tHWID\tLAST SEEN")
	for _, l := range licenses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			l.LicenseKey,
			l.Status,
			formatTime(l.ExpiresAt, "never"),
			valueOr(l.HWID, "-"),
			formatTime(l.LastSeen, "-"),
		)
	}
	return w.Flush()
}

func formatTime(t *time.Time, empty string) string {
	if t == nil {
		return empty
	}
	return t.UTC().Format(time.RFC3339)
}

func valueOr(s *string, empty string) string {
	if s == nil || *s == "" {
		return empty
	}
	return *s
}
