package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/studyia/career/internal/models"
	"gorm.io/gorm"
)

var ErrInvalidReferralCode = errors.New("invalid referral code")

var referralCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,32}$`)

type ReferralStats struct {
	Code          string `json:"code"`
	Visits        int64  `json:"visits"`
	Confirmations int64  `json:"confirmations"`
	Commission    int64  `json:"commission"`
}

type ReferralService struct {
	DB *gorm.DB
}

func NewReferralService(db *gorm.DB) *ReferralService {
	return &ReferralService{DB: db}
}

func ValidReferralCode(code string) bool {
	return referralCodePattern.MatchString(code)
}

// Track records a visit that arrived through an associate's link.
func (s *ReferralService) Track(ctx context.Context, code, visitor, landing string) (*models.ReferralVisit, error) {
	if !ValidReferralCode(code) {
		return nil, ErrInvalidReferralCode
	}
	visit := &models.ReferralVisit{Code: code, Visitor: visitor, Landing: landing}
	if err := s.DB.WithContext(ctx).Create(visit).Error; err != nil {
		return nil, fmt.Errorf("track referral %s: %w", code, err)
	}
	return visit, nil
}

// Stats aggregates visits and paid unlocks attributed to code.
func (s *ReferralService) Stats(ctx context.Context, code string) (*ReferralStats, error) {
	if !ValidReferralCode(code) {
		return nil, ErrInvalidReferralCode
	}
	db := s.DB.WithContext(ctx)
	stats := &ReferralStats{Code: code}

	if err := db.Model(&models.ReferralVisit{}).Where("code = ?", code).Count(&stats.Visits).Error; err != nil {
		return nil, fmt.Errorf("count visits: %w", err)
	}

	var agg struct {
		Confirmations int64
		Commission    int64
	}
	err := db.Model(&models.PaymentConfirmation{}).
		Select("COUNT(*) AS confirmations, COALESCE(SUM(commission), 0) AS commission").
		Where("referral_code = ?", code).
		Scan(&agg).Error
	if err != nil {
		return nil, fmt.Errorf("sum commissions: %w", err)
	}
	stats.Confirmations = agg.Confirmations
	stats.Commission = agg.Commission
	return stats, nil
}
