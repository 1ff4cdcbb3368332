package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"hostel-desk.backend/internal/domain/entities"
	domainerrors "hostel-desk.backend/internal/domain/errors"
	"hostel-desk.backend/internal/interfaces/http/middleware"
	"hostel-desk.backend/internal/interfaces/http/response"
	"hostel-desk.backend/internal/usecases"
)

// AdminHandler serves the admin review dashboard
type AdminHandler struct {
	complaintUsecase *usecases.ComplaintUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(complaintUsecase *usecases.ComplaintUsecase) *AdminHandler {
	return &AdminHandler{complaintUsecase: complaintUsecase}
}

// Dashboard lists every complaint with its owner, newest first
// GET /admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	complaints, meta, err := h.complaintUsecase.ListAll(c.Request.Context(), principal, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"complaints": complaints,
		"pagination": meta,
		"statuses":   entities.Statuses,
	})
}

// UpdateStatus overwrites a complaint's status and returns to the dashboard.
// The route is a plain link target, so it stays a GET.
// GET /admin/update/:id/:status
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
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

	if _, err := h.complaintUsecase.SetStatus(c.Request.Context(), principal, id, c.Param("status")); err != nil {
		response.Error(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

// Delete removes any student's complaint
// POST /admin/complaint/delete/:id
func (h *AdminHandler) Delete(c *gin.Context) {
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
