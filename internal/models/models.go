package models

import (
	"time"

	"gorm.io/gorm"
)

type CV struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FullName string `gorm:"not null" json:"full_name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Summary  string `gorm:"type:text" json:"summary"`

	// Sections are stored as JSON text; see dtos.CVSections
	Experiences string `gorm:"type:text" json:"-"`
	Education   string `gorm:"type:text" json:"-"`
	Skills      string `gorm:"type:text" json:"-"`

	Template string `gorm:"default:'classic'" json:"template"`
	Unlocked bool   `gorm:"default:false" json:"unlocked"`
}

// PaymentConfirmation is written once a confirmation flow notifies its caller.
type PaymentConfirmation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CVID          uint   `gorm:"index" json:"cv_id"`
	Provider      string `gorm:"size:1;not null" json:"provider"`
	TransactionID string `gorm:"uniqueIndex;not null" json:"transaction_id"`
	ReferralCode  string `gorm:"index" json:"referral_code,omitempty"`
	Amount        int64  `json:"amount"`
	Commission    int64  `json:"commission"`
}

type ReferralVisit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Code      string    `gorm:"index;not null" json:"code"`
	Visitor   string    `json:"visitor"`
	Landing   string    `json:"landing"`
}
