package entities

import (
	"strings"
	"time"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleAdmin   UserRole = "admin"
)

// Valid reports whether the role is one of the closed set
func (r UserRole) Valid() bool {
	return r == UserRoleStudent || r == UserRoleAdmin
}

// User represents a registered account
type User struct {
	ID           uint      `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	MatricNo     string    `json:"matricNo"`
	PasswordHash string    `json:"-"`
	HostelName   string    `json:"hostelName"`
	RoomNumber   string    `json:"roomNumber"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Hostels lists the residential hostels accepted at registration
var Hostels = []string{"Aman Damai", "Lembaran", "Restu", "Tekun"}

// FieldError describes a single invalid form field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RegisterInput represents input for student registration
type RegisterInput struct {
	FullName        string `form:"full_name" json:"fullName"`
	Email           string `form:"email" json:"email"`
	MatricNo        string `form:"matric_no" json:"matricNo"`
	HostelName      string `form:"hostel_name" json:"hostelName"`
	RoomNumber      string `form:"room_number" json:"roomNumber"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirmPassword"`
}

// Validate checks the registration form against the account policy.
// emailDomain is the institutional domain students must register under.
func (in *RegisterInput) Validate(emailDomain string) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(in.FullName) == "" {
		errs = append(errs, FieldError{"full_name", "full name is required"})
	}
	if in.Email == "" {
		errs = append(errs, FieldError{"email", "email is required"})
	} else if !strings.HasSuffix(strings.ToLower(in.Email), "@"+strings.ToLower(emailDomain)) {
		errs = append(errs, FieldError{"email", "email must belong to the " + emailDomain + " domain"})
	}
	if l := len(in.MatricNo); l < 6 || l > 20 {
		errs = append(errs, FieldError{"matric_no", "matric number must be 6-20 characters"})
	}
	if !validHostel(in.HostelName) {
		errs = append(errs, FieldError{"hostel_name", "unknown hostel"})
	}
	if strings.TrimSpace(in.RoomNumber) == "" {
		errs = append(errs, FieldError{"room_number", "room number is required"})
	}
	if len(in.Password) < 6 {
		errs = append(errs, FieldError{"password", "password must be at least 6 characters"})
	}
	if in.Password != in.ConfirmPassword {
		errs = append(errs, FieldError{"confirm_password", "passwords do not match"})
	}

	return errs
}

func validHostel(name string) bool {
	for _, h := range Hostels {
		if h == name {
			return true
		}
	}
	return false
}

// LoginInput represents input for user login
type LoginInput struct {
	MatricNo string `form:"matric_no" json:"matricNo"`
	Password string `form:"password" json:"password"`
}

// Validate checks the login form for missing fields
func (in *LoginInput) Validate() []FieldError {
	var errs []FieldError
	if in.MatricNo == "" {
		errs = append(errs, FieldError{"matric_no", "matric number is required"})
	}
	if in.Password == "" {
		errs = append(errs, FieldError{"password", "password is required"})
	}
	return errs
}

// AuthResponse represents a successful authentication
type AuthResponse struct {
	SessionID   string `json:"sessionId"`
	AccessToken string `json:"accessToken,omitempty"`
	CSRFToken   string `json:"csrfToken,omitempty"`
	User        *User  `json:"user"`
}
