package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Insert relies on the UNIQUE (user_id, post_id) index: two concurrent
// toggles on an empty state insert at most one row, the loser observes the
// existing one via rowsAffected == 0.
func (r *likeRepository) Insert(ctx context.Context, userID, postID int64) (bool, error) {
	query := `
		INSERT INTO likes (user_id, post_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, post_id) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, userID, postID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to insert like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check inserted rows: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, postID int64) (bool, error) {
	query := `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, postID)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check deleted rows: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND post_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, postID); err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}

	return exists, nil
}
