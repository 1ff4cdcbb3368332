package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"hostel-desk.backend/internal/domain/entities"
	domainerrors "hostel-desk.backend/internal/domain/errors"
	"hostel-desk.backend/internal/infrastructure/storage"
	"hostel-desk.backend/internal/interfaces/http/middleware"
	"hostel-desk.backend/internal/usecases"
	"hostel-desk.backend/pkg/crypto"
	"hostel-desk.backend/pkg/redis"
	"hostel-desk.backend/pkg/token"
)

// in-memory repositories backing the handler tests

type memUserRepo struct {
	seq   uint
	users map[uint]*entities.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uint]*entities.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *entities.User) error {
	for _, u := range r.users {
		if u.MatricNo == user.MatricNo || u.Email == user.Email {
			return domainerrors.ErrAlreadyExists
		}
	}
	r.seq++
	user.ID = r.seq
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uint) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByMatricNo(_ context.Context, matricNo string) (*entities.User, error) {
	for _, u := range r.users {
		if u.MatricNo == matricNo {
			return u, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

type memComplaintRepo struct {
	seq   uint
	items map[uint]*entities.Complaint
}

func newMemComplaintRepo() *memComplaintRepo {
	return &memComplaintRepo{items: map[uint]*entities.Complaint{}}
}

func (r *memComplaintRepo) Create(_ context.Context, complaint *entities.Complaint) error {
	r.seq++
	complaint.ID = r.seq
	cp := *complaint
	r.items[complaint.ID] = &cp
	return nil
}

func (r *memComplaintRepo) GetByID(_ context.Context, id uint) (*entities.Complaint, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memComplaintRepo) Update(_ context.Context, complaint *entities.Complaint) error {
	if _, ok := r.items[complaint.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	cp := *complaint
	r.items[complaint.ID] = &cp
	return nil
}

func (r *memComplaintRepo) UpdateStatus(_ context.Context, id uint, status entities.ComplaintStatus) error {
	c, ok := r.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	c.Status = status
	if status == entities.StatusResolved {
		c.ResolvedAt = null.TimeFrom(time.Now())
	} else {
		c.ResolvedAt = null.Time{}
	}
	return nil
}

func (r *memComplaintRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.items[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memComplaintRepo) sorted() []*entities.Complaint {
	out := make([]*entities.Complaint, 0, len(r.items))
	for _, c := range r.items {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *memComplaintRepo) ListByUserID(_ context.Context, userID uint) ([]*entities.Complaint, error) {
	var out []*entities.Complaint
	for _, c := range r.sorted() {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memComplaintRepo) List(_ context.Context, limit, offset int) ([]*entities.Complaint, int64, error) {
	all := r.sorted()
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

type memSessionStore struct {
	sessions map[string]*redis.SessionData
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]*redis.SessionData{}}
}

func (s *memSessionStore) CreateSession(_ context.Context, sessionID string, data *redis.SessionData, _ time.Duration) error {
	cp := *data
	s.sessions[sessionID] = &cp
	return nil
}

func (s *memSessionStore) GetSession(_ context.Context, sessionID string) (*redis.SessionData, error) {
	data, ok := s.sessions[sessionID]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return data, nil
}

func (s *memSessionStore) DeleteSession(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

// testServer wires the handlers into a router the way cmd/server does
type testServer struct {
	router        *gin.Engine
	userRepo      *memUserRepo
	complaintRepo *memComplaintRepo
	sessions      *memSessionStore
	uploadDir     string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := newMemUserRepo()
	complaintRepo := newMemComplaintRepo()
	sessions := newMemSessionStore()
	tokens := token.NewService("test-secret", time.Minute)

	uploadDir := t.TempDir()
	evidence, err := storage.NewLocalService(uploadDir)
	require.NoError(t, err)

	authUC := usecases.NewAuthUsecase(userRepo, sessions, tokens, 10*time.Minute, "student.usm.my")
	complaintUC := usecases.NewComplaintUsecase(complaintRepo, evidence)

	authHandler := NewAuthHandler(authUC)
	studentHandler := NewStudentHandler(authUC, complaintUC)
	adminHandler := NewAdminHandler(complaintUC)
	evidenceHandler := NewEvidenceHandler(evidence)

	r := gin.New()
	r.Use(middleware.SecureHeaders())

	r.GET("/", authHandler.Landing)
	r.GET("/register", authHandler.RegisterForm)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.LoginForm)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.GET("/uploads/:filename", evidenceHandler.Serve)

	authed := r.Group("/", middleware.SessionAuth(authUC, tokens), middleware.CSRF())

	student := authed.Group("/student", middleware.RequireStudent())
	student.GET("/dashboard", studentHandler.Dashboard)
	student.POST("/dashboard", middleware.SubmitDedup(), studentHandler.Submit)
	student.GET("/complaint/edit/:id", studentHandler.EditForm)
	student.POST("/complaint/edit/:id", studentHandler.Edit)
	student.POST("/complaint/delete/:id", studentHandler.Delete)

	admin := authed.Group("/admin", middleware.RequireAdmin())
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/update/:id/:status", adminHandler.UpdateStatus)
	admin.POST("/complaint/delete/:id", adminHandler.Delete)

	return &testServer{
		router:        r,
		userRepo:      userRepo,
		complaintRepo: complaintRepo,
		sessions:      sessions,
		uploadDir:     uploadDir,
	}
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// registerStudent creates an account through the HTTP surface
func (ts *testServer) registerStudent(t *testing.T, matricNo string) {
	t.Helper()
	form := url.Values{
		"full_name":        {"Aina Zulkifli"},
		"email":            {matricNo + "@student.usm.my"},
		"matric_no":        {matricNo},
		"hostel_name":      {"Restu"},
		"room_number":      {"B-203"},
		"password":         {"secret123"},
		"confirm_password": {"secret123"},
	}
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := ts.do(req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

type loginResult struct {
	sessionID string
	csrfToken string
}

// login authenticates and returns the session and CSRF tokens
func (ts *testServer) login(t *testing.T, matricNo, password string) loginResult {
	t.Helper()
	form := url.Values{"matric_no": {matricNo}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := ts.do(req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var sessionID string
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			sessionID = cookie.Value
		}
	}
	require.NotEmpty(t, sessionID)

	data, ok := ts.sessions.sessions[sessionID]
	require.True(t, ok)
	return loginResult{sessionID: sessionID, csrfToken: data.CSRFToken}
}

// seedAdmin plants an admin account directly; self-registration cannot
func (ts *testServer) seedAdmin(t *testing.T, matricNo, passwordHash string) {
	t.Helper()
	err := ts.userRepo.Create(context.Background(), &entities.User{
		FullName:     "Warden Rahim",
		Email:        "warden@usm.my",
		MatricNo:     matricNo,
		PasswordHash: passwordHash,
		HostelName:   "Restu",
		RoomNumber:   "Office",
		Role:         entities.UserRoleAdmin,
	})
	require.NoError(t, err)
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func withSession(req *http.Request, login loginResult) *http.Request {
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: login.sessionID})
	req.Header.Set(middleware.CSRFHeader, login.csrfToken)
	return req
}

// multipartComplaint builds a complaint submission body
func multipartComplaint(t *testing.T, category, description, evidenceName, evidenceContent string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("category", category))
	require.NoError(t, mw.WriteField("description", description))
	if evidenceName != "" {
		part, err := mw.CreateFormFile(EvidenceField, evidenceName)
		require.NoError(t, err)
		_, err = part.Write([]byte(evidenceContent))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}
