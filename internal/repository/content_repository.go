package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

type contentRepository struct {
	db *sqlx.DB
}

func NewContentRepository(db *sqlx.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, content *models.Content) error {
	query := `
		INSERT INTO contents (title, slug, text, published, tags, user_id, created_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		content.Title, content.Slug, content.Text, content.Published,
		content.Tags, content.UserID, content.CreatedTime,
	).Scan(&content.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: slug already exists", apperr.ErrConflict)
		}
		return fmt.Errorf("failed to create content: %w", err)
	}

	return nil
}

func (r *contentRepository) Get(ctx context.Context, key ContentKey) (*models.Content, error) {
	var (
		query string
		arg   interface{}
	)
	if key.ByID {
		query = `SELECT id, title, slug, text, published, tags, user_id, created_time FROM contents WHERE id = $1`
		arg = key.ID
	} else {
		query = `SELECT id, title, slug, text, published, tags, user_id, created_time FROM contents WHERE slug = $1`
		arg = key.Slug
	}

	var content models.Content
	err := r.db.GetContext(ctx, &content, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: content", apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}

	return &content, nil
}

func (r *contentRepository) List(ctx context.Context, offset, limit int) ([]models.Content, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM contents`); err != nil {
		return nil, 0, fmt.Errorf("failed to count contents: %w", err)
	}

	query := `
		SELECT id, title, slug, text, published, tags, user_id, created_time
		FROM contents
		ORDER BY id
		OFFSET $1 LIMIT $2`

	contents := []models.Content{}
	if err := r.db.SelectContext(ctx, &contents, query, offset, limit); err != nil {
		return nil, 0, fmt.Errorf("failed to list contents: %w", err)
	}

	return contents, total, nil
}

func (r *contentRepository) Update(ctx context.Context, content *models.Content) error {
	query := `
		UPDATE contents
		SET title = $1, slug = $2, text = $3, published = $4, tags = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		content.Title, content.Slug, content.Text, content.Published, content.Tags, content.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: content %d", apperr.ErrNotFound, content.ID)
	}

	return nil
}

func (r *contentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM contents WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: content %d", apperr.ErrNotFound, id)
	}

	return nil
}
