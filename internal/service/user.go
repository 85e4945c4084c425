package service

import (
	"context"
	"fmt"

	"github.com/contesthub/contest-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.User, error)
	FindAdmins(ctx context.Context) ([]domain.User, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if user.Role == "" {
		user.Role = domain.UserRoleMember
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}
