package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/prompt-library/internal/model"
	"github.com/sakif/prompt-library/internal/repository"
)

// compile-time check that *DB implements repository.TagRepository
var _ repository.TagRepository = (*DB)(nil)

// RecordTags ensures every given name exists in the tags catalog.
//
// INSERT OR IGNORE keys on the UNIQUE(name) constraint: names already in the
// catalog are skipped without error, new ones get a fresh ID. Names are
// expected to be normalized by the service layer before reaching here.
func (db *DB) RecordTags(ctx context.Context, names []string) error {
	for _, name := range names {
		_, err := db.conn.ExecContext(ctx,
			`INSERT OR IGNORE INTO tags (id, name, created_at) VALUES (?, ?, ?)`,
			xid.New().String(),
			name,
			time.Now(),
		)
		if err != nil {
			return fmt.Errorf("sqlite: recording tag %q: %w", name, err)
		}
	}
	return nil
}

// ListTags returns every catalog entry sorted by name.
func (db *DB) ListTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, created_at FROM tags ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing tags: %w", err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning tag row: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating tag rows: %w", err)
	}

	return tags, nil
}
