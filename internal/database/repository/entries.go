package repository

import "context"

// EntryRepo handles section entries.
type EntryRepo struct {
	db DBTX
}

func NewEntryRepo(db DBTX) *EntryRepo { return &EntryRepo{db: db} }

// Upsert keys on (section_id, slug); the id of an existing row is kept.
func (r *EntryRepo) Upsert(ctx context.Context, e Entry) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO entries(id, section_id, slug, heading, subheading, body, sort_order)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(section_id, slug) DO UPDATE SET
	 heading=excluded.heading,
	 subheading=excluded.subheading,
	 body=excluded.body,
	 sort_order=excluded.sort_order;
	`, e.ID, e.SectionID, e.Slug, e.Heading, e.Subheading, e.Body, e.SortOrder)
	return err
}

func (r *EntryRepo) ListBySection(ctx context.Context, sectionID string) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, section_id, slug, heading, subheading, body, sort_order
	FROM entries WHERE section_id = ? ORDER BY sort_order, slug`, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SectionID, &e.Slug, &e.Heading, &e.Subheading, &e.Body, &e.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteMissing removes entries of sectionID whose slug is not in keep.
func (r *EntryRepo) DeleteMissing(ctx context.Context, sectionID string, keep []string) (int64, error) {
	existing, err := r.ListBySection(ctx, sectionID)
	if err != nil {
		return 0, err
	}
	wanted := make(map[string]bool, len(keep))
	for _, s := range keep {
		wanted[s] = true
	}
	var removed int64
	for _, e := range existing {
		if wanted[e.Slug] {
			continue
		}
		res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, e.ID)
		if err != nil {
			return removed, err
		}
		n, _ := res.RowsAffected()
		removed += n
	}
	return removed, nil
}
