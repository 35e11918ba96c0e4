package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jask/folio/internal/config"
	"github.com/jask/folio/internal/database"
	"github.com/jask/folio/internal/database/repository"
	"github.com/jask/folio/internal/logging"
	"github.com/jask/folio/internal/scrollspy"
	"github.com/jask/folio/internal/service"
)

// store is the opened state every command works against: config, logger,
// migrated and seeded database.
type store struct {
	configPath string
	cfg        config.Config
	catalog    *scrollspy.Catalog
	log        *slog.Logger
	logCloser  io.Closer
	db         *sql.DB
}

func openStore(ctx context.Context, cmd *cobra.Command) (*store, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	s := &store{configPath: path, cfg: cfg, catalog: catalog, log: log, logCloser: closer}

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s.db, err = database.Open(cfg.Database.Path)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.SeedDefaults(ctx, s.db, catalog); err != nil {
		s.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	log.Debug("store: ready", "db", cfg.Database.Path, "sections", catalog.Len())
	return s, nil
}

func (s *store) content() *service.ContentService {
	return &service.ContentService{
		Sections: repository.NewSectionRepo(s.db),
		Entries:  repository.NewEntryRepo(s.db),
		Catalog:  s.catalog,
	}
}

func (s *store) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
	_ = s.logCloser.Close()
}
