package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	domainerrors "hostel-desk.backend/internal/domain/errors"
	"hostel-desk.backend/internal/infrastructure/storage"
	"hostel-desk.backend/internal/interfaces/http/response"
)

// presignTTL bounds how long a generated evidence link stays valid
const presignTTL = 15 * time.Minute

// EvidenceHandler serves stored evidence images
type EvidenceHandler struct {
	store storage.Service
}

// NewEvidenceHandler creates a new evidence handler
func NewEvidenceHandler(store storage.Service) *EvidenceHandler {
	return &EvidenceHandler{store: store}
}

// Serve returns the evidence image. Disk-backed files stream directly;
// remote backends answer with a redirect to a short-lived signed URL.
// GET /uploads/:filename
func (h *EvidenceHandler) Serve(c *gin.Context) {
	name := storage.SanitizeFilename(c.Param("filename"))
	if name == "" {
		response.Error(c, domainerrors.BadRequest("invalid filename"))
		return
	}

	if local, ok := h.store.(*storage.LocalService); ok {
		path := filepath.Join(local.Dir(), name)
		if _, err := os.Stat(path); err != nil {
			response.Error(c, domainerrors.NotFound("evidence not found"))
			return
		}
		c.File(path)
		return
	}

	url, err := h.store.URL(c.Request.Context(), name, presignTTL)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}
