package main

import (
	"os"

	"github.com/spf13/cobra"

	"warden/internal/interfaces/cli/license"
	"warden/internal/interfaces/cli/migrate"
	"warden/internal/interfaces/cli/operator"
	"warden/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "warden",
		Short: "Warden - control plane for game-server anti-cheat agents",
		Long:  `Warden verifies licenses, tracks agent liveness, relays dashboard commands and keeps the ban directory.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		license.NewCommand(),
		operator.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
