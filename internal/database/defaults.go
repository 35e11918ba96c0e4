package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/folio/internal/database/repository"
	"github.com/jask/folio/internal/scrollspy"
)

type sampleEntry struct {
	slug, heading, subheading, body string
}

var sampleTitles = map[scrollspy.SectionID]string{
	"home":           "Jask Aran",
	"about":          "About",
	"experience":     "Experience",
	"articles":       "Articles",
	"skills":         "Skills",
	"certifications": "Certifications",
	"testimonials":   "Testimonials",
	"contact":        "Contact",
}

var sampleEntries = map[scrollspy.SectionID][]sampleEntry{
	"home": {
		{"hero", "Jask Aran", "Backend engineer", "Distributed systems, storage engines and the terminals that drive them."},
	},
	"about": {
		{"bio", "Hello", "", "I build infrastructure that stays boring in production. Ten years across payments, logistics and developer tooling, mostly in Go. I like small binaries, clear interfaces and dashboards nobody has to look at."},
	},
	"experience": {
		{"acme", "Staff Engineer", "Acme Payments, 2021 to now", "Led the ledger rewrite onto an append-only event store. Cut settlement latency from hours to minutes and retired three cron fleets."},
		{"parcel", "Senior Engineer", "Parcel Logistics, 2018 to 2021", "Owned the routing service and its sqlite-backed edge cache. Built the replay tooling used in every incident review."},
		{"tooling", "Engineer", "Devtools Co, 2015 to 2018", "Shipped the CLI used by forty thousand developers. Maintained the plugin protocol and its compatibility suite."},
		{"intern", "Intern", "University Lab, 2014", "Wrote a packet capture analyser for the networking course and never fully stopped."},
	},
	"articles": {
		{"generics-in-practice", "Generics in practice", "2024", "Where type parameters earned their keep in a large codebase, and where an interface was still the better tool."},
		{"sqlite-in-production", "SQLite in production", "2024", "Running a write-heavy service on a single file database for two years."},
		{"context-cancellation", "Context cancellation patterns", "2024", "Propagating deadlines through worker pools without leaking goroutines."},
		{"structured-logging", "Structured logging with slog", "2023", "Migrating a service from printf logs to attributes, and what the dashboards gained."},
		{"migrations", "Boring migrations", "2023", "Embedding schema migrations in the binary and applying them at startup."},
		{"tui-design", "Designing terminal UIs", "2023", "Layout, focus and scroll state in an Elm-style architecture."},
		{"rate-limits", "Rate limits that explain themselves", "2022", "Returning budgets, not just 429s."},
		{"event-sourcing", "Event sourcing a ledger", "2022", "Snapshots, replays and the invariants that make money add up."},
		{"flaky-tests", "Killing flaky tests", "2022", "Fake clocks, deterministic ids and the end of sleep-based assertions."},
		{"profiling", "Reading a CPU profile", "2021", "A walk through pprof on a real latency regression."},
		{"config", "Configuration without surprises", "2021", "Defaults, files and environment overrides with one precedence rule."},
		{"on-call", "Humane on-call", "2020", "Alert budgets and runbooks that fit on one screen."},
	},
	"skills": {
		{"languages", "Languages", "", "Go, SQL, TypeScript, a little Rust."},
		{"storage", "Storage", "", "Postgres, SQLite, Redis, S3-compatible object stores."},
		{"infra", "Infrastructure", "", "Kubernetes, Terraform, Prometheus, OpenTelemetry."},
		{"practice", "Practice", "", "Incident review, API design, mentoring."},
	},
	"certifications": {
		{"cka", "Certified Kubernetes Administrator", "2022", ""},
		{"aws-sa", "AWS Solutions Architect Associate", "2020", ""},
		{"oscp", "Offensive Security Certified Professional", "2019", ""},
	},
	"testimonials": {
		{"maria", "\"The calmest person in any incident channel.\"", "Maria, Engineering Manager at Acme", ""},
		{"tom", "\"Turned our slowest service into the one nobody talks about.\"", "Tom, CTO at Parcel", ""},
		{"li", "\"Reviews that teach instead of gatekeep.\"", "Li, Senior Engineer at Devtools Co", ""},
	},
	"contact": {
		{"email", "Email", "", "jask@folio.example"},
		{"github", "GitHub", "", "github.com/jask"},
		{"mastodon", "Mastodon", "", "@jask@hachyderm.io"},
	},
}

// SectionTitle returns the display title for id, falling back to a
// capitalised id for sections outside the sample set.
func SectionTitle(id scrollspy.SectionID) string {
	if t, ok := sampleTitles[id]; ok {
		return t
	}
	s := strings.ReplaceAll(string(id), "-", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// EntryID derives a stable id so reseeding and reimporting hit the same rows.
func EntryID(section, slug string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("entry:"+section+"/"+slug)).String()
}

// SeedDefaults fills an empty database with a sample CV laid out over the
// catalog. It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB, catalog *scrollspy.Catalog) error {
	n, err := repository.NewSectionRepo(db).Count(ctx)
	if err != nil {
		return fmt.Errorf("count sections: %w", err)
	}
	if n > 0 {
		return nil
	}
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		sections := repository.NewSectionRepo(tx)
		entries := repository.NewEntryRepo(tx)
		for idx, s := range catalog.Sections() {
			row := repository.Section{ID: string(s.ID), Title: SectionTitle(s.ID), SortOrder: idx}
			if err := sections.Upsert(ctx, row); err != nil {
				return fmt.Errorf("seed section %s: %w", s.ID, err)
			}
			for i, e := range sampleEntries[s.ID] {
				entry := repository.Entry{
					ID:         EntryID(row.ID, e.slug),
					SectionID:  row.ID,
					Slug:       e.slug,
					Heading:    e.heading,
					Subheading: e.subheading,
					Body:       e.body,
					SortOrder:  i,
				}
				if err := entries.Upsert(ctx, entry); err != nil {
					return fmt.Errorf("seed entry %s/%s: %w", s.ID, e.slug, err)
				}
			}
		}
		return nil
	})
}
