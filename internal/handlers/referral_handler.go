package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyia/career/internal/dtos"
	"github.com/studyia/career/internal/services"
)

type ReferralHandler struct {
	Referrals *services.ReferralService
}

func NewReferralHandler(r *services.ReferralService) *ReferralHandler {
	return &ReferralHandler{Referrals: r}
}

func (h *ReferralHandler) TrackVisit(c *gin.Context) {
	var req dtos.TrackReferralRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
			return
		}
	}
	visit, err := h.Referrals.Track(c.Request.Context(), c.Param("code"), req.Visitor, req.Landing)
	if err != nil {
		referralError(c, err)
		return
	}
	c.JSON(http.StatusCreated, visit)
}

func (h *ReferralHandler) GetStats(c *gin.Context) {
	stats, err := h.Referrals.Stats(c.Request.Context(), c.Param("code"))
	if err != nil {
		referralError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func referralError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrInvalidReferralCode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
