package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jask/folio/internal/database"
	"github.com/jask/folio/internal/database/repository"
	"github.com/jask/folio/internal/scrollspy"
)

// Importer loads page content from TOML files:
//
//	[[section]]
//	id = "experience"
//	title = "Experience"
//
//	  [[section.entry]]
//	  slug = "acme"
//	  heading = "Staff Engineer"
//	  subheading = "Acme Payments"
//	  body = "..."
type Importer struct {
	DB      *sql.DB
	Catalog *scrollspy.Catalog
	Log     *slog.Logger
}

type ImportResult struct {
	Sections int
	Imported int
	Removed  int
	Skipped  int
	Errors   []error
}

type contentFile struct {
	Section []contentSection `toml:"section"`
}

type contentSection struct {
	ID    string         `toml:"id"`
	Title string         `toml:"title"`
	Entry []contentEntry `toml:"entry"`
}

type contentEntry struct {
	Slug       string `toml:"slug"`
	Heading    string `toml:"heading"`
	Subheading string `toml:"subheading"`
	Body       string `toml:"body"`
}

func (im *Importer) ImportFile(ctx context.Context, path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("open content file: %w", err)
	}
	defer f.Close()
	return im.Import(ctx, f)
}

// Import upserts every listed section and its entries in one transaction.
// Entries of an imported section that the file no longer lists are removed.
// Unknown sections and malformed entries are skipped and reported in Errors.
func (im *Importer) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	var file contentFile
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return ImportResult{}, fmt.Errorf("decode content: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 && im.Log != nil {
		im.Log.Warn("import: unknown keys ignored", "keys", fmt.Sprint(undecoded))
	}

	res := ImportResult{}
	err = database.WithTx(ctx, im.DB, func(tx *sql.Tx) error {
		sections := repository.NewSectionRepo(tx)
		entries := repository.NewEntryRepo(tx)
		for _, sec := range file.Section {
			id, err := im.sectionID(sec.ID)
			if err != nil {
				res.Errors = append(res.Errors, err)
				res.Skipped += len(sec.Entry)
				continue
			}
			title := strings.TrimSpace(sec.Title)
			if title == "" {
				title = database.SectionTitle(id)
			}
			row := repository.Section{ID: string(id), Title: title, SortOrder: im.Catalog.Index(id)}
			if err := sections.Upsert(ctx, row); err != nil {
				return fmt.Errorf("upsert section %s: %w", id, err)
			}
			res.Sections++

			seen := map[string]bool{}
			var keep []string
			for i, e := range sec.Entry {
				heading := strings.TrimSpace(e.Heading)
				if heading == "" {
					res.Errors = append(res.Errors, fmt.Errorf("section %s entry %d: heading is required", id, i+1))
					res.Skipped++
					continue
				}
				slug := Slugify(e.Slug)
				if slug == "" {
					slug = Slugify(heading)
				}
				if seen[slug] {
					res.Errors = append(res.Errors, fmt.Errorf("section %s entry %d: duplicate slug %q", id, i+1, slug))
					res.Skipped++
					continue
				}
				seen[slug] = true
				entry := repository.Entry{
					ID:         database.EntryID(row.ID, slug),
					SectionID:  row.ID,
					Slug:       slug,
					Heading:    heading,
					Subheading: strings.TrimSpace(e.Subheading),
					Body:       strings.TrimSpace(e.Body),
					SortOrder:  i,
				}
				if err := entries.Upsert(ctx, entry); err != nil {
					return fmt.Errorf("upsert entry %s/%s: %w", id, slug, err)
				}
				keep = append(keep, slug)
				res.Imported++
			}
			removed, err := entries.DeleteMissing(ctx, row.ID, keep)
			if err != nil {
				return fmt.Errorf("prune %s: %w", id, err)
			}
			res.Removed += int(removed)
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	if im.Log != nil {
		im.Log.Info("import: done", "sections", res.Sections, "imported", res.Imported, "removed", res.Removed, "skipped", res.Skipped)
	}
	return res, nil
}

func (im *Importer) sectionID(raw string) (scrollspy.SectionID, error) {
	id := scrollspy.SectionID(strings.TrimSpace(raw))
	if !im.Catalog.Contains(id) {
		return "", fmt.Errorf("section %q: %w", raw, scrollspy.ErrUnknownSection)
	}
	return id, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses everything but letters and digits to dashes.
func Slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
