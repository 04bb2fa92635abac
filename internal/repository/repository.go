package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"blogapi/internal/models"
)

// Lookup is a tagged user reference: either an id or a username, decided by
// the caller before it reaches the repository.
type Lookup struct {
	ID       int64
	Username string
	ByID     bool
}

func ByID(id int64) Lookup {
	return Lookup{ID: id, ByID: true}
}

func ByUsername(username string) Lookup {
	return Lookup{Username: username}
}

// ContentKey references a content row by id or slug.
type ContentKey struct {
	ID   int64
	Slug string
	ByID bool
}

func ContentByID(id int64) ContentKey {
	return ContentKey{ID: id, ByID: true}
}

func ContentBySlug(slug string) ContentKey {
	return ContentKey{Slug: slug}
}

// UserFilter narrows user listings. Nil fields are not applied; the same
// filter drives both the page query and the count query.
type UserFilter struct {
	Username  *string
	Superuser *bool
	Disabled  *bool
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, lookup Lookup) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, filter UserFilter, offset, limit int) ([]models.User, int, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, sortBy, order string, offset, limit int) ([]models.Post, int, error)
	SetPublished(ctx context.Context, id int64, published bool) error
	Delete(ctx context.Context, id int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
}

type LikeRepository interface {
	// Insert adds a like and reports whether a row was created. A lost race
	// against a concurrent insert returns false without error.
	Insert(ctx context.Context, userID, postID int64) (bool, error)
	Delete(ctx context.Context, userID, postID int64) (bool, error)
	Exists(ctx context.Context, userID, postID int64) (bool, error)
}

type ContentRepository interface {
	Create(ctx context.Context, content *models.Content) error
	Get(ctx context.Context, key ContentKey) (*models.Content, error)
	List(ctx context.Context, offset, limit int) ([]models.Content, int, error)
	Update(ctx context.Context, content *models.Content) error
	Delete(ctx context.Context, id int64) error
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.PostImage) error
	GetByID(ctx context.Context, id int64) (*models.PostImage, error)
	ListByPost(ctx context.Context, postID int64) ([]models.PostImage, error)
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	User    UserRepository
	Post    PostRepository
	Comment CommentRepository
	Like    LikeRepository
	Content ContentRepository
	Image   ImageRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Like:    NewLikeRepository(db),
		Content: NewContentRepository(db),
		Image:   NewImageRepository(db),
	}
}
