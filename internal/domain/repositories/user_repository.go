package repositories

import (
	"context"

	"hostel-desk.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uint) (*entities.User, error)
	GetByMatricNo(ctx context.Context, matricNo string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}
