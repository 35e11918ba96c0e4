package repository

import "context"

// SectionRepo handles sections.
type SectionRepo struct {
	db DBTX
}

func NewSectionRepo(db DBTX) *SectionRepo { return &SectionRepo{db: db} }

func (r *SectionRepo) Upsert(ctx context.Context, s Section) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO sections(id, title, sort_order)
	VALUES (?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 title=excluded.title,
	 sort_order=excluded.sort_order;
	`, s.ID, s.Title, s.SortOrder)
	return err
}

func (r *SectionRepo) List(ctx context.Context) ([]Section, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, sort_order FROM sections ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Section
	for rows.Next() {
		var s Section
		if err := rows.Scan(&s.ID, &s.Title, &s.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SectionRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sections`).Scan(&n)
	return n, err
}
