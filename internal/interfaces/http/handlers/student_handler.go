package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"hostel-desk.backend/internal/domain/entities"
	domainerrors "hostel-desk.backend/internal/domain/errors"
	"hostel-desk.backend/internal/interfaces/http/middleware"
	"hostel-desk.backend/internal/interfaces/http/response"
	"hostel-desk.backend/internal/usecases"
)

// EvidenceField is the multipart field carrying the evidence photo
const EvidenceField = "evidence"

// StudentHandler serves the student dashboard and complaint forms
type StudentHandler struct {
	authUsecase      *usecases.AuthUsecase
	complaintUsecase *usecases.ComplaintUsecase
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(authUsecase *usecases.AuthUsecase, complaintUsecase *usecases.ComplaintUsecase) *StudentHandler {
	return &StudentHandler{
		authUsecase:      authUsecase,
		complaintUsecase: complaintUsecase,
	}
}

// Dashboard lists the student's own complaints, newest first
// GET /student/dashboard
func (h *StudentHandler) Dashboard(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	user, err := h.authUsecase.GetUserByID(c.Request.Context(), principal.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	complaints, err := h.complaintUsecase.ListOwn(c.Request.Context(), principal)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":       user,
		"complaints": complaints,
		"categories": entities.Categories,
	})
}

// Submit files a new complaint, with an optional evidence photo
// POST /student/dashboard
func (h *StudentHandler) Submit(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	var input entities.ComplaintInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	name, file, err := openEvidence(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if file != nil {
		defer file.Close()
	}

	complaint, err := h.complaintUsecase.Submit(c.Request.Context(), principal, &input, name, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":   "Complaint submitted",
		"complaint": complaint,
	})
}

// EditForm returns the complaint being edited, owner only
// GET /student/complaint/edit/:id
func (h *StudentHandler) EditForm(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	id, err := complaintID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	complaint, err := h.complaintUsecase.Get(c.Request.Context(), principal, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"complaint":  complaint,
		"categories": entities.Categories,
	})
}

// Edit updates a complaint's category, description and optionally its evidence
// POST /student/complaint/edit/:id
func (h *StudentHandler) Edit(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	id, err := complaintID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.ComplaintInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	name, file, err := openEvidence(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if file != nil {
		defer file.Close()
	}

	complaint, err := h.complaintUsecase.Edit(c.Request.Context(), principal, id, &input, name, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":   "Complaint updated",
		"complaint": complaint,
	})
}

// Delete removes the student's own complaint
// POST /student/complaint/delete/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	id, err := complaintID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.complaintUsecase.Delete(c.Request.Context(), principal, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Complaint deleted"})
}

// complaintID parses the :id path parameter
func complaintID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domainerrors.BadRequest("invalid complaint id")
	}
	return uint(id), nil
}

// openEvidence opens the optional evidence upload. A missing file is not an
// error; the caller gets an empty name and a nil reader.
func openEvidence(c *gin.Context) (string, io.ReadCloser, error) {
	header, err := c.FormFile(EvidenceField)
	if err != nil {
		if err == http.ErrMissingFile || err == http.ErrNotMultipart {
			return "", nil, nil
		}
		return "", nil, domainerrors.BadRequest("invalid evidence upload")
	}
	if header.Filename == "" {
		return "", nil, nil
	}

	file, err := header.Open()
	if err != nil {
		return "", nil, domainerrors.BadRequest("invalid evidence upload")
	}
	return header.Filename, file, nil
}
