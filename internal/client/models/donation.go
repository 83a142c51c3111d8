package models

import "time"

// DonationTier is the three-valued giving tier.
type DonationTier string

const (
	TierBronze DonationTier = "Bronze"
	TierSilver DonationTier = "Silver"
	TierGold   DonationTier = "Gold"
)

// DonationType distinguishes one-time gifts from recurring pledges.
type DonationType string

const (
	DonationOneTime   DonationType = "one-time"
	DonationRecurring DonationType = "recurring"
)

// Donation is a donation record as returned by the backend.
type Donation struct {
	ID                 string         `json:"_id"`
	UserID             string         `json:"user"`
	CowID              string         `json:"cow,omitempty"`
	Amount             float64        `json:"amount"`
	Tier               DonationTier   `json:"tier"`
	DonationType       DonationType   `json:"donationType"`
	RecurringFrequency string         `json:"recurringFrequency,omitempty"`
	TransactionDetails map[string]any `json:"transactionDetails,omitempty"`
	CreatedAt          time.Time      `json:"createdAt,omitempty"`
	UpdatedAt          time.Time      `json:"updatedAt,omitempty"`
}

// DonationInput is the create-donation payload.
type DonationInput struct {
	CowID              string         `json:"cow,omitempty"`
	Amount             float64        `json:"amount"`
	Tier               DonationTier   `json:"tier"`
	DonationType       DonationType   `json:"donationType"`
	RecurringFrequency string         `json:"recurringFrequency,omitempty"`
	TransactionDetails map[string]any `json:"transactionDetails,omitempty"`
}
