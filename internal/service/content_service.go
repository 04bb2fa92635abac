package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
	"blogapi/internal/pagination"
	"blogapi/internal/repository"
)

// ContentIncoming is the write shape for contents. Nil fields are left
// untouched on patch.
type ContentIncoming struct {
	Title     *string
	Text      *string
	Published *bool
	Tags      []string
}

type ContentService interface {
	List(ctx context.Context, page, size int) (*pagination.Page[models.ContentResponse], error)
	Get(ctx context.Context, key repository.ContentKey) (*models.ContentResponse, error)
	Create(ctx context.Context, actor *models.User, in ContentIncoming) (*models.ContentResponse, error)
	Update(ctx context.Context, actor *models.User, contentID int64, patch ContentIncoming) (*models.ContentResponse, error)
	Delete(ctx context.Context, actor *models.User, contentID int64) error
}

type contentService struct {
	contentRepo repository.ContentRepository
}

func NewContentService(contentRepo repository.ContentRepository) ContentService {
	return &contentService{contentRepo: contentRepo}
}

func slugify(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}

func (s *contentService) List(ctx context.Context, page, size int) (*pagination.Page[models.ContentResponse], error) {
	offset, limit := pagination.Window(page, size)

	contents, total, err := s.contentRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]models.ContentResponse, 0, len(contents))
	for _, c := range contents {
		responses = append(responses, c.Response())
	}

	return pagination.New(responses, total, page, size), nil
}

func (s *contentService) Get(ctx context.Context, key repository.ContentKey) (*models.ContentResponse, error) {
	content, err := s.contentRepo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	resp := content.Response()
	return &resp, nil
}

func (s *contentService) Create(ctx context.Context, actor *models.User, in ContentIncoming) (*models.ContentResponse, error) {
	if err := CheckPermission(actor, nil, false); err != nil {
		return nil, err
	}
	if in.Title == nil || *in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}

	content := &models.Content{
		Title:       *in.Title,
		Slug:        slugify(*in.Title),
		Tags:        strings.Join(in.Tags, ","),
		UserID:      actor.ID,
		CreatedTime: time.Now().Format(time.RFC3339),
	}
	if in.Text != nil {
		content.Text = *in.Text
	}
	if in.Published != nil {
		content.Published = *in.Published
	}

	if err := s.contentRepo.Create(ctx, content); err != nil {
		return nil, err
	}

	resp := content.Response()
	return &resp, nil
}

func (s *contentService) Update(ctx context.Context, actor *models.User, contentID int64, patch ContentIncoming) (*models.ContentResponse, error) {
	content, err := s.contentRepo.Get(ctx, repository.ContentByID(contentID))
	if err != nil {
		return nil, err
	}

	if err := CheckPermission(actor, &content.UserID, false); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		content.Title = *patch.Title
		content.Slug = slugify(*patch.Title)
	}
	if patch.Text != nil {
		content.Text = *patch.Text
	}
	if patch.Published != nil {
		content.Published = *patch.Published
	}
	if patch.Tags != nil {
		content.Tags = strings.Join(patch.Tags, ",")
	}

	if err := s.contentRepo.Update(ctx, content); err != nil {
		return nil, err
	}

	resp := content.Response()
	return &resp, nil
}

func (s *contentService) Delete(ctx context.Context, actor *models.User, contentID int64) error {
	content, err := s.contentRepo.Get(ctx, repository.ContentByID(contentID))
	if err != nil {
		return err
	}

	if err := CheckPermission(actor, &content.UserID, false); err != nil {
		return err
	}

	return s.contentRepo.Delete(ctx, contentID)
}
