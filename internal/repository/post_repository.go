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

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// postColumns selects a post together with its derived counters. Heat score is
// computed from the counters after scanning.
const postColumns = `
	p.id, p.title, p.content, p.published, p.user_id, p.created_at, p.updated_at,
	(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count,
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count`

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, content, published, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id`

	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	err := r.db.QueryRowxContext(ctx, query,
		post.Title, post.Content, post.Published, post.UserID, now,
	).Scan(&post.ID)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT` + postColumns + ` FROM posts p WHERE p.id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: post %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	post.ComputeHeat()
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, sortBy, order string, offset, limit int) ([]models.Post, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts p WHERE p.published = TRUE`); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	direction := "DESC"
	if order == "asc" {
		direction = "ASC"
	}

	orderExpr := "t.created_at"
	if sortBy == "heat_score" {
		orderExpr = "(t.like_count * 0.7 + t.comment_count * 0.3)"
	}

	query := fmt.Sprintf(`
		SELECT * FROM (
			SELECT`+postColumns+` FROM posts p WHERE p.published = TRUE
		) t
		ORDER BY %s %s, t.id %s
		OFFSET $1 LIMIT $2`, orderExpr, direction, direction)

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, offset, limit); err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	for i := range posts {
		posts[i].ComputeHeat()
	}

	return posts, total, nil
}

func (r *postRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	query := `UPDATE posts SET published = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, published, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update post status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: post %d", apperr.ErrNotFound, id)
	}

	return nil
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: post %d", apperr.ErrNotFound, id)
	}

	return nil
}
