package market

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// EventType names one accepted state mutation.
type EventType string

const (
	EventBountyCreated         EventType = "BountyCreated"
	EventBountyCancelled       EventType = "BountyCancelled"
	EventBountyJoined          EventType = "BountyJoined"
	EventClaimCreated          EventType = "ClaimCreated"
	EventClaimSubmittedForVote EventType = "ClaimSubmittedForVote"
	EventVoteClaim             EventType = "VoteClaim"
	EventWithdrawFromBounty    EventType = "WithdrawFromOpenBounty"
	EventClaimAccepted         EventType = "ClaimAccepted"
	EventVotingPeriodReset     EventType = "VotingPeriodReset"
)

// Event is emitted alongside the state change that produced it. Operations
// return their events to the caller instead of pushing them into a global
// sink, so the core stays testable without any sink attached. Failed
// operations emit nothing.
type Event struct {
	Type     EventType      `json:"type"`
	BountyID uint64         `json:"bounty_id"`
	ClaimID  uint64         `json:"claim_id,omitempty"`
	Address  common.Address `json:"address"`
	Amount   int64          `json:"amount,omitempty"`
	Yes      bool           `json:"yes,omitempty"` // VoteClaim only
	At       time.Time      `json:"at"`
}
