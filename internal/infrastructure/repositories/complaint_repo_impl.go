package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"hostel-desk.backend/internal/domain/entities"
	domainerrors "hostel-desk.backend/internal/domain/errors"
	"hostel-desk.backend/internal/infrastructure/models"
)

// ComplaintRepository implements complaint data operations
type ComplaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

// Create creates a new complaint
func (r *ComplaintRepository) Create(ctx context.Context, complaint *entities.Complaint) error {
	m := &models.Complaint{
		Category:     string(complaint.Category),
		Description:  complaint.Description,
		EvidenceFile: complaint.EvidenceFile,
		Status:       string(complaint.Status),
		CreatedAt:    complaint.CreatedAt,
		UserID:       complaint.UserID,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}

	complaint.ID = m.ID
	complaint.CreatedAt = m.CreatedAt
	return nil
}

// GetByID gets a complaint by ID with its owner preloaded
func (r *ComplaintRepository) GetByID(ctx context.Context, id uint) (*entities.Complaint, error) {
	var m models.Complaint
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return complaintToEntity(&m), nil
}

// Update replaces a complaint's category, description and evidence reference
func (r *ComplaintRepository) Update(ctx context.Context, complaint *entities.Complaint) error {
	updates := map[string]interface{}{
		"category":      string(complaint.Category),
		"description":   complaint.Description,
		"evidence_file": complaint.EvidenceFile,
	}

	result := r.db.WithContext(ctx).Model(&models.Complaint{}).Where("id = ?", complaint.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus overwrites a complaint's status. resolved_at tracks the
// transition into Resolved and clears on any other label.
func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id uint, status entities.ComplaintStatus) error {
	updates := map[string]interface{}{
		"status":      string(status),
		"resolved_at": nil,
	}
	if status == entities.StatusResolved {
		updates["resolved_at"] = time.Now()
	}

	result := r.db.WithContext(ctx).Model(&models.Complaint{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a complaint
func (r *ComplaintRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Complaint{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByUserID lists one student's complaints, newest first
func (r *ComplaintRepository) ListByUserID(ctx context.Context, userID uint) ([]*entities.Complaint, error) {
	var complaintModels []models.Complaint
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&complaintModels).Error
	if err != nil {
		return nil, err
	}

	complaints := make([]*entities.Complaint, 0, len(complaintModels))
	for i := range complaintModels {
		complaints = append(complaints, complaintToEntity(&complaintModels[i]))
	}
	return complaints, nil
}

// List lists all complaints with owners, newest first, with optional paging
func (r *ComplaintRepository) List(ctx context.Context, limit, offset int) ([]*entities.Complaint, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Complaint{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Preload("User").Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var complaintModels []models.Complaint
	if err := query.Find(&complaintModels).Error; err != nil {
		return nil, 0, err
	}

	complaints := make([]*entities.Complaint, 0, len(complaintModels))
	for i := range complaintModels {
		complaints = append(complaints, complaintToEntity(&complaintModels[i]))
	}
	return complaints, total, nil
}

func complaintToEntity(m *models.Complaint) *entities.Complaint {
	c := &entities.Complaint{
		ID:           m.ID,
		Category:     entities.ComplaintCategory(m.Category),
		Description:  m.Description,
		EvidenceFile: m.EvidenceFile,
		Status:       entities.ComplaintStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		ResolvedAt:   null.TimeFromPtr(m.ResolvedAt),
		UserID:       m.UserID,
	}
	if m.User.ID != 0 {
		c.User = userToEntity(&m.User)
	}
	return c
}
