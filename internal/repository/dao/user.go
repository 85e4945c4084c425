package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email     string `gorm:"unique;not null"`
	Name      string `gorm:"not null"`
	Username  string
	AvatarURL string
	Role      string `gorm:"not null;default:member"` // "member" or "admin"

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_users_email"`) {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByIDs(ctx context.Context, ids []uint) ([]User, error) {
	var users []User
	if len(ids) == 0 {
		return users, nil
	}

	result := d.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *UserDAO) FindByRole(ctx context.Context, role string) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Where("role = ?", role).Order("id").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}
