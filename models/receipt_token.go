package models

import "time"

const (
	ReceiptStatusPending = "pending"
	ReceiptStatusMinted  = "minted"
	ReceiptStatusFailed  = "failed"
)

// ReceiptToken is the mint queue for completion receipts. One row is created
// when a claim is accepted; the mint worker drives it to minted. TokenID is
// keccak256 over the bounty and claim ids, so the issuance service can
// deduplicate retries.
type ReceiptToken struct {
	TokenID   string     `gorm:"primaryKey" json:"token_id"`
	BountyID  uint64     `gorm:"index;not null" json:"bounty_id"`
	ClaimID   uint64     `gorm:"not null" json:"claim_id"`
	Winner    string     `gorm:"index;not null" json:"winner"`
	Status    string     `gorm:"index;default:pending" json:"status"`
	Attempts  int        `gorm:"default:0" json:"attempts"`
	LastError string     `json:"last_error,omitempty"`
	MintedAt  *time.Time `json:"minted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
