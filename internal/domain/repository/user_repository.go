package repository

import (
	"context"

	"github.com/pon-gitweb/tallyup-sub002/internal/domain/entity"
)

// UserRepository puerto de usuarios (DIP).
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, u *entity.User) error
}
