package repository

import (
	"context"
	"fmt"

	"github.com/contesthub/contest-api/internal/domain"
	"github.com/contesthub/contest-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dao.User, error)
	FindByRole(ctx context.Context, role string) ([]dao.User, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Email:     user.Email,
		Name:      user.Name,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
		Role:      user.Role,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return userDaoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return userDaoToDomain(found), nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.User, error) {
	found, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	return usersDaoToDomain(found), nil
}

func (r *UserRepository) FindAdmins(ctx context.Context) ([]domain.User, error) {
	found, err := r.dao.FindByRole(ctx, domain.UserRoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByRole -> %w", err)
	}

	return usersDaoToDomain(found), nil
}

func userDaoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func usersDaoToDomain(us []dao.User) []domain.User {
	out := make([]domain.User, len(us))
	for i, u := range us {
		out[i] = userDaoToDomain(u)
	}

	return out
}

// profileOf returns nil for associations that were not loaded.
func profileOf(u dao.User) *domain.Profile {
	if u.ID == 0 {
		return nil
	}
	p := userDaoToDomain(u).Profile()

	return &p
}
