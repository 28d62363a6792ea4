package models

import "time"

// MarketEvent is the append-only journal of accepted market mutations.
type MarketEvent struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	EventType string    `gorm:"index;not null" json:"event_type"`
	BountyID  uint64    `gorm:"index;not null" json:"bounty_id"`
	ClaimID   uint64    `json:"claim_id,omitempty"`
	Address   string    `gorm:"index" json:"address"`
	Amount    int64     `json:"amount"`
	Yes       bool      `json:"yes"`
	At        time.Time `gorm:"index" json:"at"`
	CreatedAt time.Time `json:"created_at"`
}

func (MarketEvent) TableName() string {
	return "market_event"
}
