package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

func newTestPostService(postRepo *MockPostRepository, likeRepo *MockLikeRepository) PostService {
	return NewPostService(postRepo, likeRepo, new(MockImageRepository), nil, nil)
}

func TestToggleLike_AddsWhenAbsent(t *testing.T) {
	postRepo := new(MockPostRepository)
	likeRepo := new(MockLikeRepository)
	svc := newTestPostService(postRepo, likeRepo)

	actor := &models.User{ID: 1, Username: "alice"}
	postRepo.On("GetByID", mock.Anything, int64(10)).Return(&models.Post{ID: 10}, nil)
	likeRepo.On("Exists", mock.Anything, int64(1), int64(10)).Return(false, nil)
	likeRepo.On("Insert", mock.Anything, int64(1), int64(10)).Return(true, nil)

	liked, err := svc.ToggleLike(context.Background(), actor, 10)

	assert.NoError(t, err)
	assert.True(t, liked)
	likeRepo.AssertExpectations(t)
}

func TestToggleLike_RemovesWhenPresent(t *testing.T) {
	postRepo := new(MockPostRepository)
	likeRepo := new(MockLikeRepository)
	svc := newTestPostService(postRepo, likeRepo)

	actor := &models.User{ID: 1, Username: "alice"}
	postRepo.On("GetByID", mock.Anything, int64(10)).Return(&models.Post{ID: 10}, nil)
	likeRepo.On("Exists", mock.Anything, int64(1), int64(10)).Return(true, nil)
	likeRepo.On("Delete", mock.Anything, int64(1), int64(10)).Return(true, nil)

	liked, err := svc.ToggleLike(context.Background(), actor, 10)

	assert.NoError(t, err)
	assert.False(t, liked)
	likeRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

// A concurrent toggle can insert between the existence check and our insert.
// The unique index makes our insert a no-op; the like still ends up present.
func TestToggleLike_LostInsertRace(t *testing.T) {
	postRepo := new(MockPostRepository)
	likeRepo := new(MockLikeRepository)
	svc := newTestPostService(postRepo, likeRepo)

	actor := &models.User{ID: 1, Username: "alice"}
	postRepo.On("GetByID", mock.Anything, int64(10)).Return(&models.Post{ID: 10}, nil)
	likeRepo.On("Exists", mock.Anything, int64(1), int64(10)).Return(false, nil)
	likeRepo.On("Insert", mock.Anything, int64(1), int64(10)).Return(false, nil)

	liked, err := svc.ToggleLike(context.Background(), actor, 10)

	assert.NoError(t, err)
	assert.True(t, liked)
}

func TestToggleLike_Unauthenticated(t *testing.T) {
	svc := newTestPostService(new(MockPostRepository), new(MockLikeRepository))

	_, err := svc.ToggleLike(context.Background(), nil, 10)

	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestPostList_RejectsUnknownSortField(t *testing.T) {
	svc := newTestPostService(new(MockPostRepository), new(MockLikeRepository))

	_, err := svc.List(context.Background(), "views", "desc", 1, 10)

	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestPostList_RejectsUnknownOrder(t *testing.T) {
	svc := newTestPostService(new(MockPostRepository), new(MockLikeRepository))

	_, err := svc.List(context.Background(), "heat_score", "sideways", 1, 10)

	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestPostList_DefaultsToNewestFirst(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := newTestPostService(postRepo, new(MockLikeRepository))

	postRepo.On("List", mock.Anything, "created_at", "desc", 0, 10).
		Return([]models.Post{{ID: 1}}, 1, nil)

	page, err := svc.List(context.Background(), "", "", 1, 10)

	assert.NoError(t, err)
	assert.Len(t, page.Items, 1)
	postRepo.AssertExpectations(t)
}

func TestSetPublished_OwnerOnly(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := newTestPostService(postRepo, new(MockLikeRepository))

	stranger := &models.User{ID: 2, Username: "bob"}
	postRepo.On("GetByID", mock.Anything, int64(10)).Return(&models.Post{ID: 10, UserID: 1}, nil)

	_, err := svc.SetPublished(context.Background(), stranger, 10, true)

	assert.ErrorIs(t, err, apperr.ErrForbidden)
	postRepo.AssertNotCalled(t, "SetPublished", mock.Anything, mock.Anything, mock.Anything)
}

func TestPostCreate_TitleRequired(t *testing.T) {
	svc := newTestPostService(new(MockPostRepository), new(MockLikeRepository))

	actor := &models.User{ID: 1, Username: "alice"}

	_, err := svc.Create(context.Background(), actor, CreatePostRequest{Content: "no title"})

	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestComputeHeat(t *testing.T) {
	post := models.Post{LikeCount: 10, CommentCount: 5}
	post.ComputeHeat()
	assert.InDelta(t, 8.5, post.HeatScore, 1e-9)
}
