package test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"blogapi/internal/models"
	"blogapi/internal/pagination"
	"blogapi/internal/repository"
	"blogapi/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, plainPassword string) (*models.User, string, string, error) {
	args := m.Called(ctx, username, plainPassword)
	if args.Get(0) == nil {
		return nil, args.String(1), args.String(2), args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.String(2), args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) ResolveToken(ctx context.Context, accessToken string) (*models.User, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) RequireFresh(ctx context.Context, accessToken string) (*models.User, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, actor *models.User, filter repository.UserFilter, page, size int) (*pagination.Page[models.User], error) {
	args := m.Called(ctx, actor, filter, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[models.User]), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, actor *models.User, req service.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, actor *models.User, lookup repository.Lookup) (*models.User, error) {
	args := m.Called(ctx, actor, lookup)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, actor *models.User, userID int64, req service.UpdateUserRequest) (*models.User, error) {
	args := m.Called(ctx, actor, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdatePassword(ctx context.Context, actor *models.User, userID int64, plainPassword, confirm string) (*models.User, error) {
	args := m.Called(ctx, actor, userID, plainPassword, confirm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, actor *models.User, userID int64) error {
	args := m.Called(ctx, actor, userID)
	return args.Error(0)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) Create(ctx context.Context, actor *models.User, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Get(ctx context.Context, postID int64) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) List(ctx context.Context, sortBy, order string, page, size int) (*pagination.Page[models.Post], error) {
	args := m.Called(ctx, sortBy, order, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[models.Post]), args.Error(1)
}

func (m *MockPostService) SetPublished(ctx context.Context, actor *models.User, postID int64, published bool) (*models.Post, error) {
	args := m.Called(ctx, actor, postID, published)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Delete(ctx context.Context, actor *models.User, postID int64) error {
	args := m.Called(ctx, actor, postID)
	return args.Error(0)
}

func (m *MockPostService) ToggleLike(ctx context.Context, actor *models.User, postID int64) (bool, error) {
	args := m.Called(ctx, actor, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostService) AddImage(ctx context.Context, actor *models.User, postID int64, fileName string, file io.Reader, size int64) (*models.PostImage, error) {
	args := m.Called(ctx, actor, postID, fileName, file, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostImage), args.Error(1)
}

func (m *MockPostService) DeleteImage(ctx context.Context, actor *models.User, imageID int64) error {
	args := m.Called(ctx, actor, imageID)
	return args.Error(0)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Create(ctx context.Context, actor *models.User, postID int64, content string, parentID *int64) (*models.Comment, error) {
	args := m.Called(ctx, actor, postID, content, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) ListTree(ctx context.Context, postID int64, page, size int) (*pagination.Page[*models.CommentNode], error) {
	args := m.Called(ctx, postID, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[*models.CommentNode]), args.Error(1)
}

type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) List(ctx context.Context, page, size int) (*pagination.Page[models.ContentResponse], error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[models.ContentResponse]), args.Error(1)
}

func (m *MockContentService) Get(ctx context.Context, key repository.ContentKey) (*models.ContentResponse, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentResponse), args.Error(1)
}

func (m *MockContentService) Create(ctx context.Context, actor *models.User, in service.ContentIncoming) (*models.ContentResponse, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentResponse), args.Error(1)
}

func (m *MockContentService) Update(ctx context.Context, actor *models.User, contentID int64, patch service.ContentIncoming) (*models.ContentResponse, error) {
	args := m.Called(ctx, actor, contentID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentResponse), args.Error(1)
}

func (m *MockContentService) Delete(ctx context.Context, actor *models.User, contentID int64) error {
	args := m.Called(ctx, actor, contentID)
	return args.Error(0)
}
