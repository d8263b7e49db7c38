package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/prompt-library/internal/model"
	"github.com/sakif/prompt-library/internal/repository"
)

// compile-time check that *DB implements repository.HistoryRepository
var _ repository.HistoryRepository = (*DB)(nil)

// Append writes one audit row. The table is append-only — there is no
// update or delete method, on purpose.
func (db *DB) Append(ctx context.Context, entry *model.ChangeHistory) error {
	entry.ID = xid.New().String()
	entry.CreatedAt = time.Now()

	// prompt_id is nullable: an empty string means "no prompt reference".
	var promptID any
	if entry.PromptID != "" {
		promptID = entry.PromptID
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO change_history (id, prompt_id, user_id, change_type, change_description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID,
		promptID,
		entry.UserID,
		string(entry.ChangeType),
		entry.ChangeDescription,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: appending %s history for prompt %q: %w",
			entry.ChangeType, entry.PromptID, err)
	}

	return nil
}

// ListHistory returns every audit row newest-first, LEFT JOINed with the user's
// username and the prompt's title. Both joins tolerate the referenced row
// being absent (prompt_id may have been set NULL), in which case the
// display fields come back empty.
func (db *DB) ListHistory(ctx context.Context) ([]model.ChangeHistory, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT h.id, h.prompt_id, h.user_id, h.change_type, h.change_description, h.created_at,
		        u.username, p.title
		 FROM change_history h
		 LEFT JOIN users u ON h.user_id = u.id
		 LEFT JOIN prompts p ON h.prompt_id = p.id
		 ORDER BY h.created_at DESC, h.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing history: %w", err)
	}
	defer rows.Close()

	entries := []model.ChangeHistory{}
	for rows.Next() {
		var e model.ChangeHistory
		var promptID, userName, promptTitle sql.NullString
		var changeType string

		err := rows.Scan(
			&e.ID,
			&promptID,
			&e.UserID,
			&changeType,
			&e.ChangeDescription,
			&e.CreatedAt,
			&userName,
			&promptTitle,
		)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning history row: %w", err)
		}

		e.PromptID = promptID.String
		e.ChangeType = model.ChangeType(changeType)
		e.UserName = userName.String
		e.PromptTitle = promptTitle.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating history rows: %w", err)
	}

	return entries, nil
}
