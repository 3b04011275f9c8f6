package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studyia/career/internal/cooldown"
)

type CooldownHandler struct {
	Store *cooldown.Store
}

func NewCooldownHandler(store *cooldown.Store) *CooldownHandler {
	return &CooldownHandler{Store: store}
}

type setCooldownRequest struct {
	DurationMs int64 `json:"duration_ms" binding:"required,gt=0"`
}

func (h *CooldownHandler) CheckCooldown(c *gin.Context) {
	st, err := h.Store.Check(c.Request.Context(), c.Param("key"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *CooldownHandler) SetCooldown(c *gin.Context) {
	var req setCooldownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	key := c.Param("key")
	if err := h.Store.Set(c.Request.Context(), key, time.Duration(req.DurationMs)*time.Millisecond); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.CheckCooldown(c)
}

func (h *CooldownHandler) ClearCooldown(c *gin.Context) {
	if err := h.Store.Clear(c.Request.Context(), c.Param("key")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
