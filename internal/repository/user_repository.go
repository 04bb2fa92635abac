package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

const pqUniqueViolation = "23505"

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (username, password_hash, superuser, disabled) VALUES ($1, $2, $3, $4) RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		user.Username, user.PasswordHash, user.Superuser, user.Disabled,
	).Scan(&user.ID)
	if err != nil {
		// the unique constraint serializes concurrent registrations; the
		// check-then-insert in the service is only a fast path
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username already exists", apperr.ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) Get(ctx context.Context, lookup Lookup) (*models.User, error) {
	if lookup.ByID {
		return r.GetByID(ctx, lookup.ID)
	}
	return r.GetByUsername(ctx, lookup.Username)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User

	query := `SELECT id, username, password_hash, superuser, disabled FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	// exact match, case-sensitive
	query := `SELECT id, username, password_hash, superuser, disabled FROM users WHERE username = $1`

	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %q", apperr.ErrNotFound, username)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &user, nil
}

// buildUserFilter renders the WHERE clause shared by List's count and page
// queries so the two can never disagree.
func buildUserFilter(filter UserFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if filter.Username != nil {
		args = append(args, "%"+*filter.Username+"%")
		clauses = append(clauses, "username LIKE $"+strconv.Itoa(len(args)))
	}
	if filter.Superuser != nil {
		args = append(args, *filter.Superuser)
		clauses = append(clauses, "superuser = $"+strconv.Itoa(len(args)))
	}
	if filter.Disabled != nil {
		args = append(args, *filter.Disabled)
		clauses = append(clauses, "disabled = $"+strconv.Itoa(len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *userRepository) List(ctx context.Context, filter UserFilter, offset, limit int) ([]models.User, int, error) {
	where, args := buildUserFilter(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM users` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	pageQuery := fmt.Sprintf(
		`SELECT id, username, password_hash, superuser, disabled FROM users%s ORDER BY id OFFSET $%d LIMIT $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, offset, limit)

	users := []models.User{}
	if err := r.db.SelectContext(ctx, &users, pageQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET username = $1, superuser = $2, disabled = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, user.Username, user.Superuser, user.Disabled, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username already exists", apperr.ErrConflict)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: user %d", apperr.ErrNotFound, user.ID)
	}

	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: user %d", apperr.ErrNotFound, id)
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: user %d", apperr.ErrNotFound, id)
	}

	return nil
}
