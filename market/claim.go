package market

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// CreateClaim records a proof-of-work submission against a bounty. Any
// address may claim, on solo and open bounties alike; no escrow moves.
func (m *Market) CreateClaim(caller common.Address, bountyID uint64, name, description, uri string) (Claim, []Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.store.bounty(bountyID)
	if !ok {
		return Claim{}, nil, fmt.Errorf("create claim on bounty %d: %w", bountyID, ErrNotFound)
	}
	if b.Closed {
		return Claim{}, nil, fmt.Errorf("create claim on bounty %d: %w", bountyID, ErrAlreadyClosed)
	}

	c := &Claim{
		ID:          m.store.allocClaimID(),
		BountyID:    bountyID,
		Issuer:      caller,
		Name:        name,
		Description: description,
		URI:         uri,
		CreatedAt:   m.now(),
	}
	m.store.claims[c.ID] = c
	return *c, []Event{m.event(EventClaimCreated, b, c.ID, caller, 0)}, nil
}

// AcceptClaim resolves a bounty without a vote. On a solo bounty the issuer
// decides. On an open bounty it is only available while exactly one active
// participant remains, and that participant decides — full consensus of one.
func (m *Market) AcceptClaim(caller common.Address, bountyID, claimID uint64) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.store.bounty(bountyID)
	if !ok {
		return nil, fmt.Errorf("accept claim %d: %w", claimID, ErrNotFound)
	}
	if b.Closed {
		return nil, fmt.Errorf("accept claim %d: %w", claimID, ErrAlreadyClosed)
	}
	c, ok := m.store.claim(claimID)
	if !ok || c.BountyID != bountyID {
		return nil, fmt.Errorf("accept claim %d: %w", claimID, ErrNotFound)
	}

	switch b.Kind {
	case SoloBounty:
		if b.Issuer != caller {
			return nil, fmt.Errorf("accept claim %d: %w", claimID, ErrWrongCaller)
		}
	case OpenBounty:
		if r := m.store.rounds[bountyID]; r != nil && r.Open {
			return nil, fmt.Errorf("accept claim %d: %w", claimID, ErrVotingInProgress)
		}
		active, _ := m.store.activeParticipants(bountyID)
		if len(active) == 0 {
			return nil, fmt.Errorf("accept claim %d: %w", claimID, ErrNoParticipants)
		}
		if len(active) != 1 || active[0].Address != caller {
			return nil, fmt.Errorf("accept claim %d: %w", claimID, ErrWrongCaller)
		}
	}

	events := m.acceptLocked(b, c)
	return events, nil
}

// acceptLocked performs the resolution sequence shared by AcceptClaim and
// ResolveVote: fee split, payout, treasury cut, terminal record updates,
// receipt mint. Caller holds the lock and has validated everything; the
// bounty is still open here, which is the idempotency gate for minting.
func (m *Market) acceptLocked(b *Bounty, c *Claim) []Event {
	fee, net := ComputeFee(b.Amount, m.cfg.FeeNumerator, m.cfg.FeeDenominator)
	m.escrow.payout(b.ID, c.Issuer, net)
	if fee > 0 {
		m.escrow.payout(b.ID, m.cfg.Treasury, fee)
	}

	c.Accepted = true
	b.Claimer = c.Issuer
	b.AcceptedClaimID = c.ID
	b.Amount = 0
	b.Closed = true
	for _, p := range m.store.participants[b.ID] {
		if p.Active {
			p.Amount = 0
			p.Active = false
		}
	}
	if r := m.store.rounds[b.ID]; r != nil {
		r.Open = false
	}

	// A mint failure must not unwind the resolution; the worker retries
	// off the pending receipt record.
	_ = m.minter.MintReceipt(c.Issuer, b.ID, c.ID)

	return []Event{m.event(EventClaimAccepted, b, c.ID, c.Issuer, net)}
}
