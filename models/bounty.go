package models

import "time"

// Bounty mirrors a core bounty record for indexed reads. The in-memory market
// ledger is authoritative; these rows are upserted after each accepted
// mutation.
type Bounty struct {
	ID              uint64     `gorm:"primaryKey" json:"id"`
	Slug            string     `gorm:"index" json:"slug"`
	Issuer          string     `gorm:"index;not null" json:"issuer"`
	Name            string     `gorm:"not null" json:"name"`
	Description     string     `json:"description,omitempty"`
	Amount          int64      `gorm:"not null" json:"amount"`
	Kind            string     `gorm:"index;not null" json:"kind"` // "solo" or "open"
	Claimer         string     `json:"claimer,omitempty"`
	AcceptedClaimID uint64     `json:"accepted_claim_id,omitempty"`
	Closed          bool       `gorm:"index;default:false" json:"closed"`
	VotingOpen      bool       `gorm:"index;default:false" json:"voting_open"`
	VotingClaimID   uint64     `json:"voting_claim_id,omitempty"`
	VotingDeadline  *time.Time `json:"voting_deadline,omitempty"`
	VotingYes       int64      `json:"voting_yes"`
	VotingNo        int64      `json:"voting_no"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
