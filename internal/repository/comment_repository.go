package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (content, user_id, post_id, parent_id, root_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	comment.CreatedAt = time.Now().UTC()

	err := r.db.QueryRowxContext(ctx, query,
		comment.Content, comment.UserID, comment.PostID,
		comment.ParentID, comment.RootID, comment.CreatedAt,
	).Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `SELECT id, content, user_id, post_id, parent_id, root_id, created_at FROM comments WHERE id = $1`

	var comment models.Comment
	err := r.db.GetContext(ctx, &comment, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: comment %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &comment, nil
}

// ListByPost loads every comment of the post in one query; the tree builder
// works on the flat slice in memory.
func (r *commentRepository) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `
		SELECT id, content, user_id, post_id, parent_id, root_id, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at, id`

	comments := []models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}
