package services

import (
	"encoding/binary"
	"fmt"

	"bounty-board-service/models"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReceiptEnqueuer implements market.ReceiptMinter by inserting the pending
// mint row. The market calls it inside the resolution critical section; the
// actual issuance-service call happens later in the mint worker. TokenID is
// the primary key, so a replayed mint inserts nothing.
type ReceiptEnqueuer struct {
	DB *gorm.DB
}

func NewReceiptEnqueuer(db *gorm.DB) *ReceiptEnqueuer {
	return &ReceiptEnqueuer{DB: db}
}

func (e *ReceiptEnqueuer) MintReceipt(winner common.Address, bountyID, claimID uint64) error {
	row := models.ReceiptToken{
		TokenID:  ReceiptTokenID(bountyID, claimID),
		BountyID: bountyID,
		ClaimID:  claimID,
		Winner:   winner.Hex(),
		Status:   models.ReceiptStatusPending,
	}
	if err := e.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to enqueue receipt %s: %w", row.TokenID, err)
	}
	return nil
}

// ReceiptTokenID derives the deterministic token id for a resolved bounty:
// keccak256 over the big-endian bounty and claim ids.
func ReceiptTokenID(bountyID, claimID uint64) string {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], bountyID)
	binary.BigEndian.PutUint64(buf[8:], claimID)
	return crypto.Keccak256Hash(buf[:]).Hex()
}
