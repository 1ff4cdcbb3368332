package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"hostel-desk.backend/internal/domain/entities"
	domainerrors "hostel-desk.backend/internal/domain/errors"
	"hostel-desk.backend/internal/interfaces/http/middleware"
	"hostel-desk.backend/internal/interfaces/http/response"
	"hostel-desk.backend/internal/usecases"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// Landing routes a visitor to where they belong
// GET /
func (h *AuthHandler) Landing(c *gin.Context) {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie != "" {
		if principal, _, err := h.authUsecase.CurrentPrincipal(c.Request.Context(), cookie); err == nil {
			c.Redirect(http.StatusSeeOther, middleware.LandingPath(principal.Role))
			return
		}
	}
	response.Success(c, http.StatusOK, gin.H{
		"message":  "Hostel Desk complaint service",
		"login":    "/login",
		"register": "/register",
	})
}

// RegisterForm returns what the registration form needs
// GET /register
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"hostels":     entities.Hostels,
		"emailDomain": h.authUsecase.EmailDomain(),
	})
}

// Register creates a student account
// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if errs := input.Validate(h.authUsecase.EmailDomain()); len(errs) > 0 {
		response.ValidationError(c, errs)
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Registration successful, you can log in now",
		"user": gin.H{
			"id":       user.ID,
			"fullName": user.FullName,
			"matricNo": user.MatricNo,
			"email":    user.Email,
		},
	})
}

// LoginForm returns what the login form needs
// GET /login
func (h *AuthHandler) LoginForm(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"fields": []string{"matric_no", "password"},
	})
}

// Login verifies credentials and opens a session
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	auth, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			response.Error(c, domainerrors.Unauthorized("Invalid matric number or password"))
			return
		}
		response.Error(c, err)
		return
	}

	// No Max-Age: the cookie dies with the browser, the server-side TTL
	// enforces the absolute timeout.
	c.SetCookie(middleware.SessionCookieName, auth.SessionID, 0, "/", "", false, true)

	response.Success(c, http.StatusOK, gin.H{
		"sessionId":   auth.SessionID,
		"accessToken": auth.AccessToken,
		"csrfToken":   auth.CSRFToken,
		"redirect":    middleware.LandingPath(auth.User.Role),
		"user": gin.H{
			"id":       auth.User.ID,
			"fullName": auth.User.FullName,
			"matricNo": auth.User.MatricNo,
			"role":     auth.User.Role,
		},
	})
}

// Logout drops the session and sends the visitor back to the login page
// GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie != "" {
		_ = h.authUsecase.Logout(c.Request.Context(), cookie)
	} else if headerID := c.GetHeader(middleware.SessionIDHeader); headerID != "" {
		_ = h.authUsecase.Logout(c.Request.Context(), headerID)
	}

	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
