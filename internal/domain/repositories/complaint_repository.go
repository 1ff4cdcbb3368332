package repositories

import (
	"context"

	"hostel-desk.backend/internal/domain/entities"
)

// ComplaintRepository defines complaint data operations
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *entities.Complaint) error
	GetByID(ctx context.Context, id uint) (*entities.Complaint, error)
	Update(ctx context.Context, complaint *entities.Complaint) error
	UpdateStatus(ctx context.Context, id uint, status entities.ComplaintStatus) error
	Delete(ctx context.Context, id uint) error
	ListByUserID(ctx context.Context, userID uint) ([]*entities.Complaint, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Complaint, int64, error)
}
