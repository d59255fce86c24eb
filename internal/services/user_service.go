package services

import (
	"context"
	"errors"
	"strings"

	"memerender/internal/models"
	"memerender/internal/repositories"
)

type UserService interface {
	Register(ctx context.Context, name string) (*models.User, error)
	FindOrRegister(ctx context.Context, name string) (*models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
}

type userService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Register(ctx context.Context, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	u := &models.User{
		Name: name,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) FindOrRegister(ctx context.Context, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	u, err := s.users.FindByName(ctx, name)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	return s.Register(ctx, name)
}

func (s *userService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *userService) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.users.List(ctx, limit, offset)
}
