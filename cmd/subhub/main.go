package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/subhub/internal/interfaces/cli/migrate"
	"github.com/orris-inc/subhub/internal/interfaces/cli/probe"
	"github.com/orris-inc/subhub/internal/interfaces/cli/profile"
	"github.com/orris-inc/subhub/internal/interfaces/cli/server"
	"github.com/orris-inc/subhub/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "subhub",
		Short:   "SubHub - Clash subscription assembly server",
		Long:    `SubHub collects a user's proxy links, converts them through a subconverter service and merges operator profiles into the resulting Clash document.`,
		Version: version.Version,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		probe.NewCommand(),
		profile.NewCommand(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
