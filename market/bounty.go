package market

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// CreateSoloBounty escrows the issuer's deposit against a new solo bounty.
func (m *Market) CreateSoloBounty(caller common.Address, name, description string, deposit int64) (Bounty, []Event, error) {
	return m.createBounty(caller, name, description, deposit, SoloBounty)
}

// CreateOpenBounty escrows the issuer's deposit and registers the issuer as
// participant #0, so the single-active-participant fast path treats issuers
// and joiners uniformly.
func (m *Market) CreateOpenBounty(caller common.Address, name, description string, deposit int64) (Bounty, []Event, error) {
	return m.createBounty(caller, name, description, deposit, OpenBounty)
}

func (m *Market) createBounty(caller common.Address, name, description string, deposit int64, kind BountyKind) (Bounty, []Event, error) {
	if deposit <= 0 {
		return Bounty{}, nil, fmt.Errorf("create bounty: %w", ErrNoFunds)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	b := &Bounty{
		ID:          m.store.allocBountyID(),
		Issuer:      caller,
		Name:        name,
		Description: description,
		Amount:      deposit,
		Kind:        kind,
		CreatedAt:   m.now(),
	}
	m.store.bounties[b.ID] = b
	m.escrow.deposit(b.ID, deposit)
	if kind == OpenBounty {
		m.store.participants[b.ID] = []*Participant{{Address: caller, Amount: deposit, Active: true}}
	}
	return *b, []Event{m.event(EventBountyCreated, b, 0, caller, deposit)}, nil
}

// CancelSoloBounty refunds the full escrowed amount to the issuer and closes
// the bounty.
func (m *Market) CancelSoloBounty(caller common.Address, id uint64) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.store.bounty(id)
	if !ok {
		return nil, fmt.Errorf("cancel solo bounty %d: %w", id, ErrNotFound)
	}
	if b.Issuer != caller {
		return nil, fmt.Errorf("cancel solo bounty %d: %w", id, ErrWrongCaller)
	}
	if b.Kind != SoloBounty {
		return nil, fmt.Errorf("cancel solo bounty %d: %w", id, ErrWrongKind)
	}
	if b.Closed {
		return nil, fmt.Errorf("cancel solo bounty %d: %w", id, ErrAlreadyClosed)
	}

	refund := b.Amount
	m.escrow.payout(id, b.Issuer, refund)
	b.Amount = 0
	b.Closed = true
	return []Event{m.event(EventBountyCancelled, b, 0, caller, refund)}, nil
}

// CancelOpenBounty refunds every active participant their contribution and
// closes the bounty. All validation happens before the first refund, so the
// cancellation is all-or-nothing: a precondition failure leaves every pot and
// record untouched.
func (m *Market) CancelOpenBounty(caller common.Address, id uint64) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.store.bounty(id)
	if !ok {
		return nil, fmt.Errorf("cancel open bounty %d: %w", id, ErrNotFound)
	}
	if b.Issuer != caller {
		return nil, fmt.Errorf("cancel open bounty %d: %w", id, ErrWrongCaller)
	}
	if b.Kind != OpenBounty {
		return nil, fmt.Errorf("cancel open bounty %d: %w", id, ErrWrongKind)
	}
	if b.Closed {
		return nil, fmt.Errorf("cancel open bounty %d: %w", id, ErrAlreadyClosed)
	}
	if b.AcceptedClaimID != 0 {
		return nil, fmt.Errorf("cancel open bounty %d: %w", id, ErrAlreadyClosed)
	}

	active, total := m.store.activeParticipants(id)
	if total != b.Amount {
		panic(fmt.Sprintf("market: bounty %d amount %d != live contributions %d", id, b.Amount, total))
	}
	for _, p := range active {
		m.escrow.payout(id, p.Address, p.Amount)
		p.Amount = 0
		p.Active = false
	}
	b.Amount = 0
	b.Closed = true
	if r := m.store.rounds[id]; r != nil {
		r.Open = false
	}
	return []Event{m.event(EventBountyCancelled, b, 0, caller, total)}, nil
}

// JoinOpenBounty adds the caller as a contributing participant. Joining is
// allowed at any point before resolution, voting round or not.
func (m *Market) JoinOpenBounty(caller common.Address, id uint64, contribution int64) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.store.bounty(id)
	if !ok {
		return nil, fmt.Errorf("join bounty %d: %w", id, ErrNotFound)
	}
	if b.Kind != OpenBounty {
		return nil, fmt.Errorf("join bounty %d: %w", id, ErrWrongKind)
	}
	if b.Closed {
		return nil, fmt.Errorf("join bounty %d: %w", id, ErrAlreadyClosed)
	}
	if contribution <= 0 {
		return nil, fmt.Errorf("join bounty %d: %w", id, ErrNoFunds)
	}
	if m.store.findActive(id, caller) != nil {
		return nil, fmt.Errorf("join bounty %d: %w", id, ErrAlreadyJoined)
	}

	m.store.participants[id] = append(m.store.participants[id], &Participant{
		Address: caller,
		Amount:  contribution,
		Active:  true,
	})
	m.escrow.deposit(id, contribution)
	b.Amount += contribution
	return []Event{m.event(EventBountyJoined, b, 0, caller, contribution)}, nil
}

// WithdrawFromOpenBounty refunds the caller's contribution and deactivates
// their slot. Forbidden while a voting round is open so already-cast weight
// can never go stale mid-round; a withdrawn participant carries zero weight
// in any later round.
func (m *Market) WithdrawFromOpenBounty(caller common.Address, id uint64) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.store.bounty(id)
	if !ok {
		return nil, fmt.Errorf("withdraw from bounty %d: %w", id, ErrNotFound)
	}
	if b.Kind != OpenBounty {
		return nil, fmt.Errorf("withdraw from bounty %d: %w", id, ErrWrongKind)
	}
	if b.Closed {
		return nil, fmt.Errorf("withdraw from bounty %d: %w", id, ErrAlreadyClosed)
	}
	if r := m.store.rounds[id]; r != nil && r.Open {
		return nil, fmt.Errorf("withdraw from bounty %d: %w", id, ErrVotingInProgress)
	}
	p := m.store.findActive(id, caller)
	if p == nil {
		return nil, fmt.Errorf("withdraw from bounty %d: %w", id, ErrNotParticipant)
	}

	refund := p.Amount
	m.escrow.payout(id, caller, refund)
	p.Amount = 0
	p.Active = false
	b.Amount -= refund
	return []Event{m.event(EventWithdrawFromBounty, b, 0, caller, refund)}, nil
}
