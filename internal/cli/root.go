// Package cli wires the ssclab command tree: the HTTP server plus a few
// maintenance and inspection commands that work on the same database.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/ssclab/internal/api"
	"github.com/terraincognita07/ssclab/internal/config"
	"github.com/terraincognita07/ssclab/internal/db"
	"gorm.io/gorm"
)

type rootOptions struct {
	stdout io.Writer
	stderr io.Writer
	dbPath string

	cfg    config.Config
	logger *slog.Logger
}

func NewRootCommand(stdout io.Writer, stderr io.Writer) *cobra.Command {
	options := &rootOptions{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "ssclab",
		Short:         "Small step challenges: experiments, wins and collections",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if path := strings.TrimSpace(options.dbPath); path != "" {
				cfg.DBPath = path
			}
			options.cfg = cfg
			options.logger = cfg.NewLogger(options.stderr)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&options.dbPath, "db", "", "SQLite database path (overrides SSCLAB_DB_PATH)")

	root.AddCommand(
		newServeCommand(options),
		newSeedCommand(options),
		newResetCommand(options),
		newExperimentsCommand(options),
		newWinsCommand(options),
	)
	return root
}

// store is an open database with the services built on it.
type store struct {
	database *gorm.DB
	services *api.Services
}

func openStore(options *rootOptions) (*store, error) {
	database, err := db.OpenSQLite(options.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	return &store{database: database, services: api.NewServices(database, options.logger)}, nil
}

func (s *store) Close() error {
	return db.Close(s.database)
}
