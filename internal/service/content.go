package service

import (
	"context"
	"fmt"

	"github.com/jask/folio/internal/database"
	"github.com/jask/folio/internal/database/repository"
	"github.com/jask/folio/internal/scrollspy"
)

// SectionContent is one catalog section with its stored entries.
type SectionContent struct {
	ID      scrollspy.SectionID
	Title   string
	Sticky  bool
	Entries []repository.Entry
}

// Mounted reports whether the section renders. Empty sections are left out of
// the page, so the engine sees them as not mounted.
func (s SectionContent) Mounted() bool { return len(s.Entries) > 0 }

// Document is the whole page in catalog order.
type Document struct {
	Sections []SectionContent
}

func (d Document) Section(id scrollspy.SectionID) (SectionContent, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return SectionContent{}, false
}

// ContentService reads the page content.
type ContentService struct {
	Sections *repository.SectionRepo
	Entries  *repository.EntryRepo
	Catalog  *scrollspy.Catalog
}

// LoadDocument returns every catalog section in order. Stored sections outside
// the catalog are ignored; catalog sections missing from storage come back empty.
func (s *ContentService) LoadDocument(ctx context.Context) (Document, error) {
	rows, err := s.Sections.List(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("list sections: %w", err)
	}
	titles := make(map[string]string, len(rows))
	for _, r := range rows {
		titles[r.ID] = r.Title
	}

	var doc Document
	for _, sec := range s.Catalog.Sections() {
		title, ok := titles[string(sec.ID)]
		if !ok || title == "" {
			title = database.SectionTitle(sec.ID)
		}
		entries, err := s.Entries.ListBySection(ctx, string(sec.ID))
		if err != nil {
			return Document{}, fmt.Errorf("list entries for %s: %w", sec.ID, err)
		}
		doc.Sections = append(doc.Sections, SectionContent{
			ID:      sec.ID,
			Title:   title,
			Sticky:  sec.Sticky,
			Entries: entries,
		})
	}
	return doc, nil
}

// EntryCounts maps each catalog section to its number of entries.
func (s *ContentService) EntryCounts(ctx context.Context) (map[scrollspy.SectionID]int, error) {
	doc, err := s.LoadDocument(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[scrollspy.SectionID]int, len(doc.Sections))
	for _, sec := range doc.Sections {
		out[sec.ID] = len(sec.Entries)
	}
	return out, nil
}
