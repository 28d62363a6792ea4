package market

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// SubmitClaimForVote opens a voting round on an open bounty for one of its
// claims. Only an active participant may submit. The round starts with both
// tallies at zero and an empty voted set; the submitter votes like everyone
// else.
func (m *Market) SubmitClaimForVote(caller common.Address, bountyID, claimID uint64) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.store.bounty(bountyID)
	if !ok {
		return nil, fmt.Errorf("submit claim %d for vote: %w", claimID, ErrNotFound)
	}
	if b.Kind != OpenBounty {
		return nil, fmt.Errorf("submit claim %d for vote: %w", claimID, ErrWrongKind)
	}
	if b.Closed {
		return nil, fmt.Errorf("submit claim %d for vote: %w", claimID, ErrAlreadyClosed)
	}
	c, ok := m.store.claim(claimID)
	if !ok || c.BountyID != bountyID {
		return nil, fmt.Errorf("submit claim %d for vote: %w", claimID, ErrNotFound)
	}
	if r := m.store.rounds[bountyID]; r != nil && r.Open {
		return nil, fmt.Errorf("submit claim %d for vote: %w", claimID, ErrVotingInProgress)
	}
	active, _ := m.store.activeParticipants(bountyID)
	if len(active) == 0 {
		return nil, fmt.Errorf("submit claim %d for vote: %w", claimID, ErrNoParticipants)
	}
	if m.store.findActive(bountyID, caller) == nil {
		return nil, fmt.Errorf("submit claim %d for vote: %w", claimID, ErrNotParticipant)
	}

	m.store.rounds[bountyID] = &VotingRound{
		Open:     true,
		ClaimID:  claimID,
		Deadline: m.now().Add(m.cfg.VotingWindow),
		Voted:    make(map[common.Address]bool),
	}
	return []Event{m.event(EventClaimSubmittedForVote, b, claimID, caller, 0)}, nil
}

// VoteClaim adds the caller's contribution as weight on the chosen side of
// the open round. One vote per address per round, before the deadline only.
func (m *Market) VoteClaim(caller common.Address, bountyID uint64, yes bool) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.store.bounty(bountyID)
	if !ok {
		return nil, fmt.Errorf("vote on bounty %d: %w", bountyID, ErrNotFound)
	}
	r := m.store.rounds[bountyID]
	if r == nil || !r.Open {
		return nil, fmt.Errorf("vote on bounty %d: %w", bountyID, ErrNotVoting)
	}
	if !m.now().Before(r.Deadline) {
		return nil, fmt.Errorf("vote on bounty %d: deadline passed: %w", bountyID, ErrNotVoting)
	}
	p := m.store.findActive(bountyID, caller)
	if p == nil {
		return nil, fmt.Errorf("vote on bounty %d: %w", bountyID, ErrNotParticipant)
	}
	if r.Voted[caller] {
		return nil, fmt.Errorf("vote on bounty %d: %w", bountyID, ErrAlreadyVoted)
	}

	r.Voted[caller] = true
	if yes {
		r.Yes += p.Amount
	} else {
		r.No += p.Amount
	}
	ev := m.event(EventVoteClaim, b, r.ClaimID, caller, p.Amount)
	ev.Yes = yes
	return []Event{ev}, nil
}

// ResolveVote settles an open round once its deadline has passed. Callable by
// anyone — resolution is triggered by this explicit call, never by a timer.
// Strictly more yes than no weight accepts the claim; a tie or a no majority
// rejects, clearing the round without moving funds so the bounty returns to
// the votable state.
func (m *Market) ResolveVote(bountyID uint64) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.store.bounty(bountyID)
	if !ok {
		return nil, fmt.Errorf("resolve vote on bounty %d: %w", bountyID, ErrNotFound)
	}
	if b.Closed {
		return nil, fmt.Errorf("resolve vote on bounty %d: %w", bountyID, ErrAlreadyClosed)
	}
	r := m.store.rounds[bountyID]
	if r == nil || !r.Open {
		return nil, fmt.Errorf("resolve vote on bounty %d: %w", bountyID, ErrNotVoting)
	}
	if m.now().Before(r.Deadline) {
		return nil, fmt.Errorf("resolve vote on bounty %d: %w", bountyID, ErrVotingInProgress)
	}

	if r.Yes > r.No {
		c, ok := m.store.claim(r.ClaimID)
		if !ok {
			panic(fmt.Sprintf("market: round on bounty %d references unknown claim %d", bountyID, r.ClaimID))
		}
		return m.acceptLocked(b, c), nil
	}

	m.clearRound(r)
	return []Event{m.event(EventVotingPeriodReset, b, 0, b.Issuer, 0)}, nil
}

// ResetVotingPeriod is the issuer's escape hatch for a stalled round. It
// clears the round back to idle without resolving and never touches escrow.
func (m *Market) ResetVotingPeriod(caller common.Address, bountyID uint64) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.store.bounty(bountyID)
	if !ok {
		return nil, fmt.Errorf("reset voting on bounty %d: %w", bountyID, ErrNotFound)
	}
	if b.Issuer != caller {
		return nil, fmt.Errorf("reset voting on bounty %d: %w", bountyID, ErrWrongCaller)
	}
	if b.Closed {
		return nil, fmt.Errorf("reset voting on bounty %d: %w", bountyID, ErrAlreadyClosed)
	}
	r := m.store.rounds[bountyID]
	if r == nil || !r.Open {
		return nil, fmt.Errorf("reset voting on bounty %d: %w", bountyID, ErrNotVoting)
	}

	m.clearRound(r)
	return []Event{m.event(EventVotingPeriodReset, b, 0, caller, 0)}, nil
}

func (m *Market) clearRound(r *VotingRound) {
	r.Open = false
	r.ClaimID = 0
	r.Yes = 0
	r.No = 0
	r.Voted = nil
}
