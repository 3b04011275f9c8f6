package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/studyia/career/internal/cooldown"
	"github.com/studyia/career/internal/models"
	"gorm.io/gorm"
)

// Unlock is a confirmed payment for one CV download.
type Unlock struct {
	CVID          uint
	Provider      string
	TransactionID string
	ReferralCode  string
}

type UnlockService struct {
	DB        *gorm.DB
	Cooldowns *cooldown.Store

	Price          int64
	CommissionRate float64
	Cooldown       time.Duration
}

func NewUnlockService(db *gorm.DB, cooldowns *cooldown.Store, price int64, rate float64, cd time.Duration) *UnlockService {
	return &UnlockService{
		DB:             db,
		Cooldowns:      cooldowns,
		Price:          price,
		CommissionRate: rate,
		Cooldown:       cd,
	}
}

// UnlockCooldownKey names the cooldown guarding repeat unlocks of a CV.
func UnlockCooldownKey(cvID uint) string {
	return fmt.Sprintf("unlock_%d", cvID)
}

// Commission is the referrer's share of amount, rounded down.
func Commission(amount int64, rate float64) int64 {
	return int64(math.Floor(float64(amount) * rate))
}

// Complete records the payment, unlocks the CV and starts its cooldown.
func (s *UnlockService) Complete(ctx context.Context, u Unlock) (*models.PaymentConfirmation, error) {
	pc := &models.PaymentConfirmation{
		CVID:          u.CVID,
		Provider:      u.Provider,
		TransactionID: u.TransactionID,
		ReferralCode:  u.ReferralCode,
		Amount:        s.Price,
	}
	if u.ReferralCode != "" {
		pc.Commission = Commission(s.Price, s.CommissionRate)
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(pc).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("transaction %s already used: %w", u.TransactionID, err)
			}
			return fmt.Errorf("record payment: %w", err)
		}
		res := tx.Model(&models.CV{}).Where("id = ?", u.CVID).Update("unlocked", true)
		if res.Error != nil {
			return fmt.Errorf("unlock cv %d: %w", u.CVID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrCVNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.Cooldowns.Set(ctx, UnlockCooldownKey(u.CVID), s.Cooldown); err != nil {
		// the unlock itself succeeded
		log.Printf("⚠️  Failed to set unlock cooldown for CV %d: %v", u.CVID, err)
	}
	log.Printf("🔓 CV %d unlocked via provider %s (tx %s)", u.CVID, u.Provider, u.TransactionID)
	return pc, nil
}
