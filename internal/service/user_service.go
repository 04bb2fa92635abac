package service

import (
	"context"
	"errors"
	"fmt"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
	"blogapi/internal/pagination"
	"blogapi/internal/password"
	"blogapi/internal/repository"
)

type CreateUserRequest struct {
	Username  string
	Password  string
	Superuser bool
	Disabled  bool
}

// UpdateUserRequest carries optional field updates; nil means keep.
type UpdateUserRequest struct {
	Username  *string
	Superuser *bool
	Disabled  *bool
}

type UserService interface {
	List(ctx context.Context, actor *models.User, filter repository.UserFilter, page, size int) (*pagination.Page[models.User], error)
	Create(ctx context.Context, actor *models.User, req CreateUserRequest) (*models.User, error)
	Get(ctx context.Context, actor *models.User, lookup repository.Lookup) (*models.User, error)
	Update(ctx context.Context, actor *models.User, userID int64, req UpdateUserRequest) (*models.User, error)
	UpdatePassword(ctx context.Context, actor *models.User, userID int64, plainPassword, confirm string) (*models.User, error)
	Delete(ctx context.Context, actor *models.User, userID int64) error
}

type userService struct {
	userRepo repository.UserRepository
	hasher   *password.Hasher
}

func NewUserService(userRepo repository.UserRepository, hasher *password.Hasher) UserService {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

func (s *userService) List(ctx context.Context, actor *models.User, filter repository.UserFilter, page, size int) (*pagination.Page[models.User], error) {
	if err := CheckPermission(actor, nil, true); err != nil {
		return nil, err
	}

	offset, limit := pagination.Window(page, size)
	users, total, err := s.userRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}

	return pagination.New(users, total, page, size), nil
}

func (s *userService) Create(ctx context.Context, actor *models.User, req CreateUserRequest) (*models.User, error) {
	if err := CheckPermission(actor, nil, true); err != nil {
		return nil, err
	}

	// fast path only; the unique constraint is what actually serializes
	// concurrent registrations of the same username
	if existing, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: username already exists", apperr.ErrConflict)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Superuser:    req.Superuser,
		Disabled:     req.Disabled,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) Get(ctx context.Context, actor *models.User, lookup repository.Lookup) (*models.User, error) {
	if err := CheckPermission(actor, nil, false); err != nil {
		return nil, err
	}
	return s.userRepo.Get(ctx, lookup)
}

func (s *userService) Update(ctx context.Context, actor *models.User, userID int64, req UpdateUserRequest) (*models.User, error) {
	if err := CheckPermission(actor, nil, true); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		if existing, err := s.userRepo.GetByUsername(ctx, *req.Username); err == nil && existing != nil {
			return nil, fmt.Errorf("%w: username already exists", apperr.ErrConflict)
		}
		user.Username = *req.Username
	}
	if req.Superuser != nil {
		user.Superuser = *req.Superuser
	}
	if req.Disabled != nil {
		user.Disabled = *req.Disabled
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) UpdatePassword(ctx context.Context, actor *models.User, userID int64, plainPassword, confirm string) (*models.User, error) {
	if plainPassword != confirm {
		return nil, fmt.Errorf("%w: passwords don't match", apperr.ErrValidation)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// a user may change their own password, an admin anyone's
	if err := CheckPermission(actor, &user.ID, false); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	return user, nil
}

func (s *userService) Delete(ctx context.Context, actor *models.User, userID int64) error {
	if err := CheckPermission(actor, nil, true); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to load user for deletion: %w", err)
	}

	if user.ID == actor.ID {
		return fmt.Errorf("%w: you can't delete yourself", apperr.ErrForbidden)
	}

	return s.userRepo.Delete(ctx, user.ID)
}
