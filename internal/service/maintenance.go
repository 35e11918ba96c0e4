package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jask/folio/internal/database"
	"github.com/jask/folio/internal/scrollspy"
)

// MaintenanceService houses destructive actions surfaced through the CLI.
type MaintenanceService struct {
	DB      *sql.DB
	Catalog *scrollspy.Catalog
	Log     *slog.Logger
}

// Reset wipes all content and seeds the sample CV again. The schema stays
// intact so the viewer can keep running against the same file.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for _, t := range []string{"entries", "sections"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	s.compact(ctx)
	return database.SeedDefaults(ctx, s.DB, s.Catalog)
}

// compact reclaims the pages freed by Reset. The wipe is already committed,
// so a failure is logged and the reset carries on.
func (s *MaintenanceService) compact(ctx context.Context) {
	if _, err := s.DB.ExecContext(ctx, "VACUUM"); err != nil && s.Log != nil {
		s.Log.Warn("maintenance: vacuum failed", "err", err)
	}
}
