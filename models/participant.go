package models

import "time"

// Participant mirrors one contributor slot of an open bounty. Withdrawn and
// paid-out slots stay as rows with Active false and a zero amount.
type Participant struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	BountyID  uint64    `gorm:"uniqueIndex:idx_bounty_participant;not null" json:"bounty_id"`
	Address   string    `gorm:"uniqueIndex:idx_bounty_participant;not null" json:"address"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
