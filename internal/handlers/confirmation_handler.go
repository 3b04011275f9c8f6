package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/studyia/career/internal/confirmation"
	"github.com/studyia/career/internal/cooldown"
	"github.com/studyia/career/internal/dtos"
	"github.com/studyia/career/internal/models"
	"github.com/studyia/career/internal/payment"
	"github.com/studyia/career/internal/services"
)

// Unlocker receives accepted confirmations.
type Unlocker interface {
	Complete(ctx context.Context, u services.Unlock) (*models.PaymentConfirmation, error)
}

var errNoPendingUnlock = errors.New("no pending unlock for this confirmation")

type CVLookup interface {
	Get(ctx context.Context, id uint) (*models.CV, error)
}

type ConfirmationHandler struct {
	Flows     *confirmation.Manager
	Cooldowns *cooldown.Store
	Unlocker  Unlocker
	CVs       CVLookup

	// flow id -> unlock being paid for; emptied on complete, cancel or idle expiry
	pending sync.Map
}

func NewConfirmationHandler(flows *confirmation.Manager, cds *cooldown.Store, u Unlocker, cvs CVLookup) *ConfirmationHandler {
	return &ConfirmationHandler{Flows: flows, Cooldowns: cds, Unlocker: u, CVs: cvs}
}

// OpenConfirmation is the POST /confirmations endpoint.
func (h *ConfirmationHandler) OpenConfirmation(c *gin.Context) {
	var req dtos.OpenConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	provider, err := payment.ParseProvider(req.Provider)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ReferralCode != "" && !services.ValidReferralCode(req.ReferralCode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrInvalidReferralCode.Error()})
		return
	}
	if _, err := h.CVs.Get(c.Request.Context(), req.CVID); err != nil {
		cvError(c, err)
		return
	}
	if h.rejectIfCoolingDown(c, req.CVID) {
		return
	}

	unlock := services.Unlock{CVID: req.CVID, Provider: string(provider), ReferralCode: req.ReferralCode}
	id, flow := h.Flows.Open(provider, confirmation.Hooks{
		Complete: h.complete,
		Expire:   h.expire,
	})
	h.pending.Store(id, unlock)

	log.Printf("💳 Confirmation %s opened for CV %d (provider %s)", id, req.CVID, provider)
	c.JSON(http.StatusCreated, gin.H{"id": id, "confirmation": flow.Snapshot()})
}

// SubmitConfirmation is the POST /confirmations/:id/submit endpoint.
func (h *ConfirmationHandler) SubmitConfirmation(c *gin.Context) {
	id := c.Param("id")
	flow, ok := h.flow(c, id)
	if !ok {
		return
	}
	var req dtos.SubmitConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if v, ok := h.pending.Load(id); ok && h.rejectIfCoolingDown(c, v.(services.Unlock).CVID) {
		return
	}

	snap, err := flow.Submit(req.TransactionID)
	if errors.Is(err, confirmation.ErrNotIdle) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "confirmation": snap})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *ConfirmationHandler) GetConfirmation(c *gin.Context) {
	flow, ok := h.flow(c, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, flow.Snapshot())
}

// CancelConfirmation is the DELETE /confirmations/:id endpoint.
func (h *ConfirmationHandler) CancelConfirmation(c *gin.Context) {
	id := c.Param("id")
	flow, ok := h.flow(c, id)
	if !ok {
		return
	}
	if err := flow.Cancel(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "confirmation": flow.Snapshot()})
		return
	}
	h.pending.Delete(id)
	c.Status(http.StatusNoContent)
}

// complete runs on the flow's timer once the user has seen the confirmation. Its error
// ends up on the flow snapshot.
func (h *ConfirmationHandler) complete(flowID, txID string) error {
	v, ok := h.pending.LoadAndDelete(flowID)
	if !ok {
		log.Printf("❌ Confirmation %s completed with no pending unlock", flowID)
		return errNoPendingUnlock
	}
	unlock := v.(services.Unlock)
	unlock.TransactionID = txID

	if _, err := h.Unlocker.Complete(context.Background(), unlock); err != nil {
		log.Printf("❌ Confirmation %s: unlock failed: %v", flowID, err)
		return err
	}
	return nil
}

func (h *ConfirmationHandler) expire(flowID string) {
	h.pending.Delete(flowID)
	log.Printf("⌛ Confirmation %s expired unused", flowID)
}

func (h *ConfirmationHandler) flow(c *gin.Context, id string) (*confirmation.Flow, bool) {
	flow, err := h.Flows.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return flow, true
}

func (h *ConfirmationHandler) rejectIfCoolingDown(c *gin.Context, cvID uint) bool {
	st, err := h.Cooldowns.Check(c.Request.Context(), services.UnlockCooldownKey(cvID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return true
	}
	if st.Active {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":             "Please wait before confirming another payment for this CV",
			"remaining_seconds": st.RemainingSeconds,
		})
		return true
	}
	return false
}
