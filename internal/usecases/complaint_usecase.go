package usecases

import (
	"context"
	"io"
	"time"

	"hostel-desk.backend/internal/domain/entities"
	domainerrors "hostel-desk.backend/internal/domain/errors"
	"hostel-desk.backend/internal/domain/repositories"
	"hostel-desk.backend/internal/infrastructure/storage"
	"hostel-desk.backend/pkg/utils"
)

// ComplaintUsecase handles the complaint lifecycle
type ComplaintUsecase struct {
	complaintRepo repositories.ComplaintRepository
	evidence      storage.Service
}

// NewComplaintUsecase creates a new complaint usecase
func NewComplaintUsecase(complaintRepo repositories.ComplaintRepository, evidence storage.Service) *ComplaintUsecase {
	return &ComplaintUsecase{
		complaintRepo: complaintRepo,
		evidence:      evidence,
	}
}

// Submit files a new complaint for the owner. Evidence is optional; without
// it the record points at the placeholder image.
func (u *ComplaintUsecase) Submit(ctx context.Context, p Principal, input *entities.ComplaintInput, evidenceName string, evidence io.Reader) (*entities.Complaint, error) {
	if !Authorize(p, ActionSubmitComplaint, nil) {
		return nil, domainerrors.ErrForbidden
	}
	if errs := input.Validate(); len(errs) > 0 {
		return nil, domainerrors.BadRequest(errs[0].Message)
	}

	evidenceFile := entities.DefaultEvidenceFile
	if evidenceName != "" {
		stored, err := u.storeEvidence(ctx, evidenceName, evidence)
		if err != nil {
			return nil, err
		}
		evidenceFile = stored
	}

	complaint := &entities.Complaint{
		Category:     entities.ComplaintCategory(input.Category),
		Description:  input.Description,
		EvidenceFile: evidenceFile,
		Status:       entities.StatusPending,
		CreatedAt:    time.Now(),
		UserID:       p.ID,
	}

	if err := u.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

// Get fetches a single complaint for its owner or an admin
func (u *ComplaintUsecase) Get(ctx context.Context, p Principal, complaintID uint) (*entities.Complaint, error) {
	complaint, err := u.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if !Authorize(p, ActionEditComplaint, complaint) && !Authorize(p, ActionViewAllComplaints, nil) {
		return nil, domainerrors.ErrForbidden
	}
	return complaint, nil
}

// Edit replaces a complaint's category and description. The evidence
// reference changes only when a new file arrives.
func (u *ComplaintUsecase) Edit(ctx context.Context, p Principal, complaintID uint, input *entities.ComplaintInput, evidenceName string, evidence io.Reader) (*entities.Complaint, error) {
	complaint, err := u.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if !Authorize(p, ActionEditComplaint, complaint) {
		return nil, domainerrors.ErrForbidden
	}
	if errs := input.Validate(); len(errs) > 0 {
		return nil, domainerrors.BadRequest(errs[0].Message)
	}

	complaint.Category = entities.ComplaintCategory(input.Category)
	complaint.Description = input.Description
	if evidenceName != "" {
		stored, err := u.storeEvidence(ctx, evidenceName, evidence)
		if err != nil {
			return nil, err
		}
		complaint.EvidenceFile = stored
	}

	if err := u.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

// Delete removes a complaint. Owners may delete their own; admins may delete
// any.
func (u *ComplaintUsecase) Delete(ctx context.Context, p Principal, complaintID uint) error {
	complaint, err := u.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		return err
	}
	if !Authorize(p, ActionDeleteComplaint, complaint) {
		return domainerrors.ErrForbidden
	}
	return u.complaintRepo.Delete(ctx, complaintID)
}

// SetStatus overwrites a complaint's status, admin only. The label must be
// one of the closed status set; there are no transition rules beyond that.
func (u *ComplaintUsecase) SetStatus(ctx context.Context, p Principal, complaintID uint, status string) (*entities.Complaint, error) {
	if !Authorize(p, ActionSetStatus, nil) {
		return nil, domainerrors.ErrForbidden
	}

	label := entities.ComplaintStatus(status)
	if !label.Valid() {
		return nil, domainerrors.BadRequest("unknown status label")
	}

	if _, err := u.complaintRepo.GetByID(ctx, complaintID); err != nil {
		return nil, err
	}
	if err := u.complaintRepo.UpdateStatus(ctx, complaintID, label); err != nil {
		return nil, err
	}
	return u.complaintRepo.GetByID(ctx, complaintID)
}

// ListOwn lists the principal's complaints, newest first
func (u *ComplaintUsecase) ListOwn(ctx context.Context, p Principal) ([]*entities.Complaint, error) {
	if !Authorize(p, ActionViewOwnDashboard, nil) {
		return nil, domainerrors.ErrForbidden
	}
	return u.complaintRepo.ListByUserID(ctx, p.ID)
}

// ListAll lists every complaint with its owner, newest first, admin only
func (u *ComplaintUsecase) ListAll(ctx context.Context, p Principal, page, limit int) ([]*entities.Complaint, utils.PaginationMeta, error) {
	if !Authorize(p, ActionViewAllComplaints, nil) {
		return nil, utils.PaginationMeta{}, domainerrors.ErrForbidden
	}

	params := utils.GetPaginationParams(page, limit)
	complaints, total, err := u.complaintRepo.List(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return complaints, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

func (u *ComplaintUsecase) storeEvidence(ctx context.Context, name string, r io.Reader) (string, error) {
	if !storage.AllowedEvidence(name) {
		return "", domainerrors.BadRequest("evidence must be a jpg, jpeg or png image")
	}
	stored, err := u.evidence.Save(ctx, name, r)
	if err != nil {
		return "", err
	}
	return stored, nil
}
