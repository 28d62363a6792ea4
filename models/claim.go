package models

import "time"

// Claim mirrors a core claim record.
type Claim struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	BountyID    uint64    `gorm:"index;not null" json:"bounty_id"`
	Issuer      string    `gorm:"index;not null" json:"issuer"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	URI         string    `json:"uri,omitempty"` // evidence location, e.g. CDN or ipfs URL
	Accepted    bool      `gorm:"default:false" json:"accepted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
