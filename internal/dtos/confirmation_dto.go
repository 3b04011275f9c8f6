package dtos

type OpenConfirmationRequest struct {
	CVID         uint   `json:"cv_id" binding:"required"`
	Provider     string `json:"provider" binding:"required"`
	ReferralCode string `json:"referral_code"`
}

type SubmitConfirmationRequest struct {
	TransactionID string `json:"transaction_id"`
}

type TrackReferralRequest struct {
	Visitor string `json:"visitor"`
	Landing string `json:"landing"`
}
