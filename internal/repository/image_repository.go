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

type imageRepository struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.PostImage) error {
	query := `
		INSERT INTO post_images (post_id, object_name, image_url, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	image.CreatedAt = time.Now().UTC()

	err := r.db.QueryRowxContext(ctx, query,
		image.PostID, image.ObjectName, image.ImageURL, image.CreatedAt,
	).Scan(&image.ID)
	if err != nil {
		return fmt.Errorf("failed to create image record: %w", err)
	}

	return nil
}

func (r *imageRepository) GetByID(ctx context.Context, id int64) (*models.PostImage, error) {
	query := `SELECT id, post_id, object_name, image_url, created_at FROM post_images WHERE id = $1`

	var image models.PostImage
	err := r.db.GetContext(ctx, &image, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: image %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	return &image, nil
}

func (r *imageRepository) ListByPost(ctx context.Context, postID int64) ([]models.PostImage, error) {
	query := `SELECT id, post_id, object_name, image_url, created_at FROM post_images WHERE post_id = $1 ORDER BY id`

	images := []models.PostImage{}
	if err := r.db.SelectContext(ctx, &images, query, postID); err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	return images, nil
}

func (r *imageRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM post_images WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: image %d", apperr.ErrNotFound, id)
	}

	return nil
}
