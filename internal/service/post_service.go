package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"blogapi/internal/apperr"
	"blogapi/internal/cache"
	"blogapi/internal/models"
	"blogapi/internal/pagination"
	"blogapi/internal/repository"
	"blogapi/internal/storage"
)

const postCachePrefix = "posts:"

type CreatePostRequest struct {
	Title     string
	Content   string
	Published bool
}

type PostService interface {
	Create(ctx context.Context, actor *models.User, req CreatePostRequest) (*models.Post, error)
	Get(ctx context.Context, postID int64) (*models.Post, error)
	List(ctx context.Context, sortBy, order string, page, size int) (*pagination.Page[models.Post], error)
	SetPublished(ctx context.Context, actor *models.User, postID int64, published bool) (*models.Post, error)
	Delete(ctx context.Context, actor *models.User, postID int64) error
	// ToggleLike flips the actor's like on the post and reports the new state.
	ToggleLike(ctx context.Context, actor *models.User, postID int64) (bool, error)
	AddImage(ctx context.Context, actor *models.User, postID int64, fileName string, file io.Reader, size int64) (*models.PostImage, error)
	DeleteImage(ctx context.Context, actor *models.User, imageID int64) error
}

type postService struct {
	postRepo  repository.PostRepository
	likeRepo  repository.LikeRepository
	imageRepo repository.ImageRepository
	storage   storage.Storage
	cache     *cache.Cache
}

func NewPostService(postRepo repository.PostRepository, likeRepo repository.LikeRepository, imageRepo repository.ImageRepository, store storage.Storage, c *cache.Cache) PostService {
	return &postService{
		postRepo:  postRepo,
		likeRepo:  likeRepo,
		imageRepo: imageRepo,
		storage:   store,
		cache:     c,
	}
}

func (s *postService) Create(ctx context.Context, actor *models.User, req CreatePostRequest) (*models.Post, error) {
	if err := CheckPermission(actor, nil, false); err != nil {
		return nil, err
	}
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}

	post := &models.Post{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
		UserID:    actor.ID,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	return post, nil
}

func (s *postService) Get(ctx context.Context, postID int64) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	images, err := s.imageRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Images = images

	return post, nil
}

func (s *postService) List(ctx context.Context, sortBy, order string, page, size int) (*pagination.Page[models.Post], error) {
	switch sortBy {
	case "", "created_at":
		sortBy = "created_at"
	case "heat_score":
	default:
		return nil, fmt.Errorf("%w: unknown sort field %q", apperr.ErrValidation, sortBy)
	}
	switch order {
	case "", "desc":
		order = "desc"
	case "asc":
	default:
		return nil, fmt.Errorf("%w: unknown sort order %q", apperr.ErrValidation, order)
	}

	page, size = pagination.Clamp(page, size)
	key := fmt.Sprintf("%s%s:%s:%d:%d", postCachePrefix, sortBy, order, page, size)

	if s.cache != nil {
		var cached pagination.Page[models.Post]
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		} else if err != nil {
			log.Printf("warning: post listing cache read failed: %v", err)
		}
	}

	offset, limit := pagination.Window(page, size)
	posts, total, err := s.postRepo.List(ctx, sortBy, order, offset, limit)
	if err != nil {
		return nil, err
	}

	result := pagination.New(posts, total, page, size)

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, result); err != nil {
			log.Printf("warning: post listing cache write failed: %v", err)
		}
	}

	return result, nil
}

func (s *postService) SetPublished(ctx context.Context, actor *models.User, postID int64, published bool) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := CheckPermission(actor, &post.UserID, false); err != nil {
		return nil, err
	}

	if err := s.postRepo.SetPublished(ctx, postID, published); err != nil {
		return nil, err
	}
	post.Published = published

	s.invalidateListings(ctx)
	return post, nil
}

func (s *postService) Delete(ctx context.Context, actor *models.User, postID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := CheckPermission(actor, &post.UserID, false); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	s.invalidateListings(ctx)
	return nil
}

func (s *postService) ToggleLike(ctx context.Context, actor *models.User, postID int64) (bool, error) {
	if err := CheckPermission(actor, nil, false); err != nil {
		return false, err
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return false, err
	}

	liked, err := s.toggle(ctx, actor.ID, postID)
	if err != nil {
		return false, err
	}

	s.invalidateListings(ctx)
	return liked, nil
}

func (s *postService) toggle(ctx context.Context, userID, postID int64) (bool, error) {
	exists, err := s.likeRepo.Exists(ctx, userID, postID)
	if err != nil {
		return false, err
	}

	if exists {
		if _, err := s.likeRepo.Delete(ctx, userID, postID); err != nil {
			return false, err
		}
		return false, nil
	}

	inserted, err := s.likeRepo.Insert(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if !inserted {
		// lost a race against a concurrent toggle; the row exists, the
		// unique index guarantees there is exactly one
		return true, nil
	}

	return true, nil
}

func (s *postService) AddImage(ctx context.Context, actor *models.User, postID int64, fileName string, file io.Reader, size int64) (*models.PostImage, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := CheckPermission(actor, &post.UserID, false); err != nil {
		return nil, err
	}

	objectName, imageURL, err := s.storage.UploadImage(ctx, postID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	image := &models.PostImage{
		PostID:     postID,
		ObjectName: objectName,
		ImageURL:   imageURL,
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		// best effort rollback of the uploaded object
		if delErr := s.storage.DeleteImage(ctx, objectName); delErr != nil {
			log.Printf("warning: failed to remove orphaned object %s: %v", objectName, delErr)
		}
		return nil, err
	}

	return image, nil
}

func (s *postService) DeleteImage(ctx context.Context, actor *models.User, imageID int64) error {
	image, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}

	post, err := s.postRepo.GetByID(ctx, image.PostID)
	if err != nil {
		return err
	}

	if err := CheckPermission(actor, &post.UserID, false); err != nil {
		return err
	}

	if err := s.storage.DeleteImage(ctx, image.ObjectName); err != nil {
		log.Printf("warning: failed to delete object %s: %v", image.ObjectName, err)
	}

	return s.imageRepo.Delete(ctx, imageID)
}

func (s *postService) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, postCachePrefix); err != nil {
		log.Printf("warning: failed to invalidate post listing cache: %v", err)
	}
}
