package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyia/career/internal/dtos"
	"github.com/studyia/career/internal/models"
	"github.com/studyia/career/internal/services"
)

const maxUploadBytes = 10 << 20

type CVHandler struct {
	CVService *services.CVService
}

func NewCVHandler(cv *services.CVService) *CVHandler {
	return &CVHandler{CVService: cv}
}

// ExtractCV is the POST /cvs/extract endpoint. It takes a multipart "file" PDF.
func (h *CVHandler) ExtractCV(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing PDF file: " + err.Error()})
		return
	}
	if fh.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "PDF larger than 10MB"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable upload: " + err.Error()})
		return
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable upload: " + err.Error()})
		return
	}

	extracted, err := h.CVService.Extract(c.Request.Context(), content)
	switch {
	case errors.Is(err, services.ErrLLMDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	case errors.Is(err, services.ErrEmptyPDF):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Extraction failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    extracted,
	})
}

func (h *CVHandler) CreateCV(c *gin.Context) {
	var req dtos.CVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	cv, err := h.CVService.Create(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create CV: " + err.Error()})
		return
	}
	respondCV(c, http.StatusCreated, cv)
}

func (h *CVHandler) GetCV(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cv, err := h.CVService.Get(c.Request.Context(), id)
	if err != nil {
		cvError(c, err)
		return
	}
	respondCV(c, http.StatusOK, cv)
}

func (h *CVHandler) ListCVs(c *gin.Context) {
	cvs, err := h.CVService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]*dtos.CVResponse, 0, len(cvs))
	for i := range cvs {
		resp, err := services.ToResponse(&cvs[i])
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

func (h *CVHandler) UpdateCV(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dtos.CVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	cv, err := h.CVService.Update(c.Request.Context(), id, &req)
	if err != nil {
		cvError(c, err)
		return
	}
	respondCV(c, http.StatusOK, cv)
}

func (h *CVHandler) DeleteCV(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.CVService.Delete(c.Request.Context(), id); err != nil {
		cvError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondCV(c *gin.Context, status int, cv *models.CV) {
	resp, err := services.ToResponse(cv)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(status, resp)
}

func cvError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrCVNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
