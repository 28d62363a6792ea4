package market

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// BountyKind tags the two bounty variants. Every manager operation switches
// on it exhaustively instead of special-casing the issuer.
type BountyKind string

const (
	SoloBounty BountyKind = "solo"
	OpenBounty BountyKind = "open"
)

// Bounty is the escrow-backed task record. Amount tracks the live escrowed
// value and reaches zero exactly when the bounty closes.
type Bounty struct {
	ID              uint64         `json:"id"`
	Issuer          common.Address `json:"issuer"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Amount          int64          `json:"amount"`
	Kind            BountyKind     `json:"kind"`
	Claimer         common.Address `json:"claimer"`
	AcceptedClaimID uint64         `json:"accepted_claim_id"` // 0 = none
	CreatedAt       time.Time      `json:"created_at"`
	Closed          bool           `json:"closed"`
}

// Participant is one funding entry of an open bounty. Amount drops to zero
// when the participant withdraws; the slot stays so historic indexes hold.
type Participant struct {
	Address common.Address `json:"address"`
	Amount  int64          `json:"amount"`
	Active  bool           `json:"active"`
}

// Claim is a submission of completed work. Immutable except Accepted, which
// flips from false to true at most once per bounty.
type Claim struct {
	ID          uint64         `json:"id"`
	BountyID    uint64         `json:"bounty_id"`
	Issuer      common.Address `json:"issuer"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	URI         string         `json:"uri"`
	CreatedAt   time.Time      `json:"created_at"`
	Accepted    bool           `json:"accepted"`
}

// VotingRound tracks one submission cycle of an open bounty. Reused across
// cycles: a rejection clears it back to the idle state.
type VotingRound struct {
	Open     bool                    `json:"open"`
	ClaimID  uint64                  `json:"claim_id"`
	Yes      int64                   `json:"yes"`
	No       int64                   `json:"no"`
	Deadline time.Time               `json:"deadline"`
	Voted    map[common.Address]bool `json:"-"`
}

// ledger is the single owned state store. No business logic lives here, only
// storage and existence checks; Market is the sole writer and takes the lock
// before touching it.
type ledger struct {
	bounties     map[uint64]*Bounty
	claims       map[uint64]*Claim
	participants map[uint64][]*Participant // open bounties only
	rounds       map[uint64]*VotingRound   // open bounties only
	nextBountyID uint64
	nextClaimID  uint64 // starts at 1 so AcceptedClaimID==0 means none
}

func newLedger() *ledger {
	return &ledger{
		bounties:     make(map[uint64]*Bounty),
		claims:       make(map[uint64]*Claim),
		participants: make(map[uint64][]*Participant),
		rounds:       make(map[uint64]*VotingRound),
		nextBountyID: 0,
		nextClaimID:  1,
	}
}

func (l *ledger) allocBountyID() uint64 {
	id := l.nextBountyID
	l.nextBountyID++
	return id
}

func (l *ledger) allocClaimID() uint64 {
	id := l.nextClaimID
	l.nextClaimID++
	return id
}

func (l *ledger) bounty(id uint64) (*Bounty, bool) {
	b, ok := l.bounties[id]
	return b, ok
}

func (l *ledger) claim(id uint64) (*Claim, bool) {
	c, ok := l.claims[id]
	return c, ok
}

// activeParticipants returns the live entries and the total live weight.
func (l *ledger) activeParticipants(bountyID uint64) ([]*Participant, int64) {
	var active []*Participant
	var total int64
	for _, p := range l.participants[bountyID] {
		if p.Active {
			active = append(active, p)
			total += p.Amount
		}
	}
	return active, total
}

// findActive returns the live participant entry for addr, if any. At most one
// live entry per address per bounty exists.
func (l *ledger) findActive(bountyID uint64, addr common.Address) *Participant {
	for _, p := range l.participants[bountyID] {
		if p.Active && p.Address == addr {
			return p
		}
	}
	return nil
}

func (l *ledger) claimsByBounty(bountyID uint64) []Claim {
	var out []Claim
	for id := uint64(1); id < l.nextClaimID; id++ {
		if c, ok := l.claims[id]; ok && c.BountyID == bountyID {
			out = append(out, *c)
		}
	}
	return out
}
