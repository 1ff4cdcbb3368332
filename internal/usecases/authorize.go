package usecases

import "hostel-desk.backend/internal/domain/entities"

// Action is a guarded operation
type Action string

const (
	ActionViewOwnDashboard  Action = "viewOwnDashboard"
	ActionSubmitComplaint   Action = "submitComplaint"
	ActionEditComplaint     Action = "editComplaint"
	ActionDeleteComplaint   Action = "deleteComplaint"
	ActionViewAllComplaints Action = "viewAllComplaints"
	ActionSetStatus         Action = "setStatus"
)

// Principal is the authenticated identity a request acts as
type Principal struct {
	ID   uint
	Role entities.UserRole
}

// IsAdmin reports whether the principal holds the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == entities.UserRoleAdmin
}

// Authorize decides whether the principal may perform the action, optionally
// against a specific complaint. It is a pure function of role and ownership.
func Authorize(p Principal, action Action, resource *entities.Complaint) bool {
	switch action {
	case ActionViewOwnDashboard, ActionSubmitComplaint:
		return p.Role == entities.UserRoleStudent
	case ActionViewAllComplaints, ActionSetStatus:
		return p.Role == entities.UserRoleAdmin
	case ActionEditComplaint:
		return p.Role == entities.UserRoleStudent && resource != nil && resource.UserID == p.ID
	case ActionDeleteComplaint:
		if p.Role == entities.UserRoleAdmin {
			return true
		}
		return p.Role == entities.UserRoleStudent && resource != nil && resource.UserID == p.ID
	}
	return false
}
