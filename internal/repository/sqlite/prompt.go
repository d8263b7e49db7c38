package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/prompt-library/internal/apperror"
	"github.com/sakif/prompt-library/internal/model"
	"github.com/sakif/prompt-library/internal/repository"
)

// compile-time check that *DB implements repository.PromptRepository
var _ repository.PromptRepository = (*DB)(nil)

// encodeTags serializes the tag list for the TEXT column. A nil slice is
// stored as "[]" so reads never have to special-case NULL or empty.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encoding tags: %w", err)
	}
	return string(b), nil
}

func decodeTags(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("decoding tags %q: %w", raw, err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

// Create inserts a new prompt. It generates the ID and sets both timestamps
// on the passed value, so the caller gets the canonical record back.
func (db *DB) Create(ctx context.Context, prompt *model.Prompt) error {
	now := time.Now()
	prompt.ID = xid.New().String()
	prompt.CreatedAt = now
	prompt.UpdatedAt = now

	tagsJSON, err := encodeTags(prompt.Tags)
	if err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO prompts (id, title, description, author_id, tags, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		prompt.ID,
		prompt.Title,
		prompt.Description,
		prompt.AuthorID,
		tagsJSON,
		prompt.CreatedAt,
		prompt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting prompt %q: %w", prompt.Title, err)
	}

	return nil
}

// GetByID retrieves a single prompt with its author joined in.
// Returns apperror.ErrNotFound if no prompt exists with that ID.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Prompt, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT p.id, p.title, p.description, p.author_id, p.tags,
		        p.created_at, p.updated_at, u.username, u.avatar_url
		 FROM prompts p
		 LEFT JOIN users u ON p.author_id = u.id
		 WHERE p.id = ?`,
		id,
	)

	p, err := scanPrompt(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("prompt", id)
		}
		return nil, fmt.Errorf("sqlite: getting prompt %s: %w", id, err)
	}

	return p, nil
}

// List returns all prompts, newest first, with the author's username and
// avatar joined in. The LEFT JOIN keeps a prompt visible even if its author
// row is somehow missing.
func (db *DB) List(ctx context.Context) ([]model.Prompt, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT p.id, p.title, p.description, p.author_id, p.tags,
		        p.created_at, p.updated_at, u.username, u.avatar_url
		 FROM prompts p
		 LEFT JOIN users u ON p.author_id = u.id
		 ORDER BY p.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing prompts: %w", err)
	}
	defer rows.Close()

	prompts := []model.Prompt{}
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning prompt row: %w", err)
		}
		prompts = append(prompts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating prompt rows: %w", err)
	}

	return prompts, nil
}

// Update replaces title, description and tags of an existing prompt and
// bumps updated_at. Returns apperror.ErrNotFound if the ID matches no row —
// a blind UPDATE affecting zero rows would otherwise succeed silently.
func (db *DB) Update(ctx context.Context, prompt *model.Prompt) error {
	prompt.UpdatedAt = time.Now()

	tagsJSON, err := encodeTags(prompt.Tags)
	if err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}

	res, err := db.conn.ExecContext(ctx,
		`UPDATE prompts SET title = ?, description = ?, tags = ?, updated_at = ?
		 WHERE id = ?`,
		prompt.Title,
		prompt.Description,
		tagsJSON,
		prompt.UpdatedAt,
		prompt.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating prompt %s: %w", prompt.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking update of prompt %s: %w", prompt.ID, err)
	}
	if affected == 0 {
		return apperror.NotFound("prompt", prompt.ID)
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows so scanPrompt can serve
// GetByID and List with one implementation.
type scanner interface {
	Scan(dest ...any) error
}

func scanPrompt(s scanner) (*model.Prompt, error) {
	var p model.Prompt
	var tagsJSON string
	var authorName, avatarURL sql.NullString

	err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.AuthorID,
		&tagsJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
		&authorName,
		&avatarURL,
	)
	if err != nil {
		return nil, err
	}

	p.Tags, err = decodeTags(tagsJSON)
	if err != nil {
		return nil, err
	}
	p.AuthorName = authorName.String
	p.AuthorAvatarURL = avatarURL.String

	return &p, nil
}
