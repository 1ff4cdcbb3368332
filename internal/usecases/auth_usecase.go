package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"hostel-desk.backend/internal/domain/entities"
	domainerrors "hostel-desk.backend/internal/domain/errors"
	"hostel-desk.backend/internal/domain/repositories"
	"hostel-desk.backend/pkg/crypto"
	"hostel-desk.backend/pkg/redis"
	"hostel-desk.backend/pkg/token"
)

// SessionStore abstracts the server-side session backend
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// AuthUsecase handles registration, authentication and session lifecycle
type AuthUsecase struct {
	userRepo       repositories.UserRepository
	sessions       SessionStore
	tokenService   *token.Service
	sessionTimeout time.Duration
	emailDomain    string
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	sessions SessionStore,
	tokenService *token.Service,
	sessionTimeout time.Duration,
	emailDomain string,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:       userRepo,
		sessions:       sessions,
		tokenService:   tokenService,
		sessionTimeout: sessionTimeout,
		emailDomain:    emailDomain,
	}
}

// EmailDomain returns the institutional domain students register under
func (u *AuthUsecase) EmailDomain() string {
	return u.emailDomain
}

// Register creates a student account. Self-registration can never yield an
// admin: the role is fixed here regardless of input.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	if errs := input.Validate(u.emailDomain); len(errs) > 0 {
		return nil, domainerrors.BadRequest(errs[0].Message)
	}

	if _, err := u.userRepo.GetByMatricNo(ctx, input.MatricNo); err == nil {
		return nil, domainerrors.Conflict("matric number already registered")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	if _, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.Conflict("email already registered")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		FullName:     input.FullName,
		Email:        input.Email,
		MatricNo:     input.MatricNo,
		PasswordHash: passwordHash,
		HostelName:   input.HostelName,
		RoomNumber:   input.RoomNumber,
		Role:         entities.UserRoleStudent,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("matric number or email already registered")
		}
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and opens a session. Unknown matric numbers and
// wrong passwords produce the same error.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	if errs := input.Validate(); len(errs) > 0 {
		return nil, domainerrors.BadRequest(errs[0].Message)
	}

	user, err := u.userRepo.GetByMatricNo(ctx, input.MatricNo)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	csrfToken, err := crypto.GenerateCSRFToken()
	if err != nil {
		return nil, err
	}

	sessionID := uuid.New().String()
	data := &redis.SessionData{
		UserID:    user.ID,
		Role:      string(user.Role),
		CSRFToken: csrfToken,
		ExpiresAt: time.Now().Add(u.sessionTimeout),
	}
	if err := u.sessions.CreateSession(ctx, sessionID, data, u.sessionTimeout); err != nil {
		return nil, err
	}

	accessToken, err := u.tokenService.Generate(user.ID, user.MatricNo, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		SessionID:   sessionID,
		AccessToken: accessToken,
		CSRFToken:   csrfToken,
		User:        user,
	}, nil
}

// Logout invalidates the session immediately
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	return u.sessions.DeleteSession(ctx, sessionID)
}

// CurrentPrincipal resolves a session token to its principal, or
// ErrSessionExpired when the session is gone or past its deadline.
func (u *AuthUsecase) CurrentPrincipal(ctx context.Context, sessionID string) (Principal, *redis.SessionData, error) {
	data, err := u.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return Principal{}, nil, domainerrors.ErrSessionExpired
	}
	if !data.ExpiresAt.IsZero() && time.Now().After(data.ExpiresAt) {
		_ = u.sessions.DeleteSession(ctx, sessionID)
		return Principal{}, nil, domainerrors.ErrSessionExpired
	}
	return Principal{ID: data.UserID, Role: entities.UserRole(data.Role)}, data, nil
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}
