package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"hostel-desk.backend/internal/domain/entities"
	domainerrors "hostel-desk.backend/internal/domain/errors"
	"hostel-desk.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		FullName:     user.FullName,
		Email:        user.Email,
		MatricNo:     user.MatricNo,
		PasswordHash: user.PasswordHash,
		HostelName:   user.HostelName,
		RoomNumber:   user.RoomNumber,
		Role:         string(user.Role),
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}

	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByMatricNo gets a user by matriculation number
func (r *UserRepository) GetByMatricNo(ctx context.Context, matricNo string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("matric_no = ?", matricNo).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:           m.ID,
		FullName:     m.FullName,
		Email:        m.Email,
		MatricNo:     m.MatricNo,
		PasswordHash: m.PasswordHash,
		HostelName:   m.HostelName,
		RoomNumber:   m.RoomNumber,
		Role:         entities.UserRole(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
