// Package cli implements the todo-api command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/todoflow-labs/todo-api/internal/app"
	"github.com/todoflow-labs/todo-api/internal/config"
	"github.com/todoflow-labs/todo-api/internal/logging"
	"github.com/todoflow-labs/todo-api/internal/store"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

type rootFlags struct {
	configFile string
}

// NewRootCmd creates the top-level "todo-api" command with all subcommands.
func NewRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:          "todo-api",
		Short:        "HTTP API for todo items",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "optional YAML config file (env vars take precedence)")

	root.AddCommand(newServeCmd(&flags))
	root.AddCommand(newMigrateCmd(&flags))
	root.AddCommand(newVersionCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.configFile)
			if err != nil {
				return err
			}
			return app.Run(cfg)
		},
	}
}

func newMigrateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.configFile)
			if err != nil {
				return err
			}
			logger := logging.New(cfg.LogLevel)

			db, err := store.Open(cfg.DBDriver, cfg.DatabaseURL, logger)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close(db) }()

			if err := store.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s database\n", cfg.DBDriver)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}
