package service

import (
	"blogapi/internal/cache"
	"blogapi/internal/config"
	"blogapi/internal/password"
	"blogapi/internal/repository"
	"blogapi/internal/storage"
	"blogapi/internal/token"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Post    PostService
	Comment CommentService
	Content ContentService
}

func NewService(rep *repository.Repository, cfg *config.Config, cache *cache.Cache, store storage.Storage) (*Service, error) {
	codec, err := token.NewCodec(cfg.JWTSecretKey, cfg.AccessTokenDuration, cfg.RefreshTokenDuration)
	if err != nil {
		return nil, err
	}
	hasher := password.NewHasher(cfg.BcryptCost)

	return &Service{
		Auth:    NewAuthService(rep.User, codec, hasher),
		User:    NewUserService(rep.User, hasher),
		Post:    NewPostService(rep.Post, rep.Like, rep.Image, store, cache),
		Comment: NewCommentService(rep.Comment, rep.Post, cache),
		Content: NewContentService(rep.Content),
	}, nil
}
