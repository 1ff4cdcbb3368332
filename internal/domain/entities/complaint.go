package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// ComplaintCategory represents a maintenance complaint category
type ComplaintCategory string

const (
	CategoryElectrical ComplaintCategory = "Electrical"
	CategoryPlumbing   ComplaintCategory = "Plumbing"
	CategoryFurniture  ComplaintCategory = "Furniture"
	CategoryInternet   ComplaintCategory = "Internet"
	CategoryOther      ComplaintCategory = "Other"
)

// Categories lists the selectable complaint categories in form order
var Categories = []ComplaintCategory{
	CategoryElectrical,
	CategoryPlumbing,
	CategoryFurniture,
	CategoryInternet,
	CategoryOther,
}

// Valid reports whether the category is one of the fixed set
func (c ComplaintCategory) Valid() bool {
	switch c {
	case CategoryElectrical, CategoryPlumbing, CategoryFurniture, CategoryInternet, CategoryOther:
		return true
	}
	return false
}

// ComplaintStatus represents a complaint's workflow status
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "Pending"
	StatusInProgress ComplaintStatus = "In Progress"
	StatusResolved   ComplaintStatus = "Resolved"
	StatusRejected   ComplaintStatus = "Rejected"
)

// Statuses lists the statuses an admin can assign
var Statuses = []ComplaintStatus{
	StatusPending,
	StatusInProgress,
	StatusResolved,
	StatusRejected,
}

// Valid reports whether the status is one of the closed set
func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// DefaultEvidenceFile is recorded when no evidence was uploaded
const DefaultEvidenceFile = "default.jpg"

// Complaint represents a maintenance complaint owned by exactly one student
type Complaint struct {
	ID           uint              `json:"id"`
	Category     ComplaintCategory `json:"category"`
	Description  string            `json:"description"`
	EvidenceFile string            `json:"evidenceFile"`
	Status       ComplaintStatus   `json:"status"`
	CreatedAt    time.Time         `json:"createdAt"`
	ResolvedAt   null.Time         `json:"resolvedAt,omitempty"`
	UserID       uint              `json:"userId"`
	User         *User             `json:"user,omitempty"`
}

// ComplaintInput represents the complaint submission/edit form
type ComplaintInput struct {
	Category    string `form:"category" json:"category"`
	Description string `form:"description" json:"description"`
}

// Validate checks the complaint form
func (in *ComplaintInput) Validate() []FieldError {
	var errs []FieldError
	if !ComplaintCategory(in.Category).Valid() {
		errs = append(errs, FieldError{"category", "unknown category"})
	}
	if len(in.Description) < 10 {
		errs = append(errs, FieldError{"description", "description must be at least 10 characters"})
	}
	return errs
}
