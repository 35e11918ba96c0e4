package repository

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so repos can run inside WithTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Section represents a section row. Stickiness is a catalog property and
// lives in the config, not here.
type Section struct {
	ID        string
	Title     string
	SortOrder int
}

// Entry represents one item rendered inside a section: a job, an article, a skill group.
type Entry struct {
	ID         string
	SectionID  string
	Slug       string
	Heading    string
	Subheading string
	Body       string
	SortOrder  int
}
