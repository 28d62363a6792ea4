package market

import (
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// DefaultVotingWindow is how long a submitted claim stays votable.
const DefaultVotingWindow = 48 * time.Hour

// ReceiptMinter is the token-issuance collaborator. The market calls it
// exactly once per resolved bounty, inside the same critical section as the
// closed transition, so a retried resolution can never mint twice.
type ReceiptMinter interface {
	MintReceipt(winner common.Address, bountyID, claimID uint64) error
}

// NopMinter satisfies ReceiptMinter and does nothing. Default when no
// issuance service is wired.
type NopMinter struct{}

func (NopMinter) MintReceipt(common.Address, uint64, uint64) error { return nil }

// Config carries the protocol parameters.
type Config struct {
	FeeNumerator   int64
	FeeDenominator int64
	Treasury       common.Address
	VotingWindow   time.Duration
}

// Market is the serialized-transaction core: one mutex guards the ledger and
// the escrow together so a bounty record and its pot are never observed out
// of sync. Every public operation validates all preconditions before its
// first mutation; a failed call leaves no partial state.
type Market struct {
	mu     sync.Mutex
	store  *ledger
	escrow *escrow
	cfg    Config
	minter ReceiptMinter
	now    func() time.Time
}

// Option tweaks a Market at construction time.
type Option func(*Market)

// WithMinter wires the token-issuance collaborator.
func WithMinter(m ReceiptMinter) Option {
	return func(mk *Market) { mk.minter = m }
}

// WithClock injects the time source. The market never schedules anything on
// it; deadlines are only compared against it when an operation is called.
func WithClock(now func() time.Time) Option {
	return func(mk *Market) { mk.now = now }
}

func New(cfg Config, opts ...Option) *Market {
	if cfg.FeeDenominator == 0 {
		cfg.FeeNumerator, cfg.FeeDenominator = 25, 1000 // 2.5%
	}
	if cfg.VotingWindow == 0 {
		cfg.VotingWindow = DefaultVotingWindow
	}
	m := &Market{
		store:  newLedger(),
		escrow: newEscrow(),
		cfg:    cfg,
		minter: NopMinter{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// --- read-only query surface ---

func (m *Market) GetBounty(id uint64) (Bounty, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.store.bounty(id)
	if !ok {
		return Bounty{}, ErrNotFound
	}
	return *b, nil
}

// ListBounties pages through bounties in id order.
func (m *Market) ListBounties(offset, limit int) []Bounty {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]uint64, 0, len(m.store.bounties))
	for id := range m.store.bounties {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if offset >= len(ids) {
		return nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	out := make([]Bounty, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m.store.bounties[id])
	}
	return out
}

func (m *Market) GetClaim(id uint64) (Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.store.claim(id)
	if !ok {
		return Claim{}, ErrNotFound
	}
	return *c, nil
}

func (m *Market) ClaimsByBounty(bountyID uint64) ([]Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store.bounty(bountyID); !ok {
		return nil, ErrNotFound
	}
	return m.store.claimsByBounty(bountyID), nil
}

// Participants returns every participant slot of an open bounty, withdrawn
// ones included (their amount is zero and Active false).
func (m *Market) Participants(bountyID uint64) ([]Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.store.bounty(bountyID)
	if !ok {
		return nil, ErrNotFound
	}
	if b.Kind != OpenBounty {
		return nil, ErrWrongKind
	}
	out := make([]Participant, 0, len(m.store.participants[bountyID]))
	for _, p := range m.store.participants[bountyID] {
		out = append(out, *p)
	}
	return out, nil
}

// Voting returns the current round tally and deadline of an open bounty.
func (m *Market) Voting(bountyID uint64) (VotingRound, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.store.bounty(bountyID)
	if !ok {
		return VotingRound{}, ErrNotFound
	}
	if b.Kind != OpenBounty {
		return VotingRound{}, ErrWrongKind
	}
	r := m.store.rounds[bountyID]
	if r == nil {
		return VotingRound{}, nil
	}
	out := *r
	out.Voted = nil
	return out, nil
}

// BalanceOf reports the value the escrow has credited to addr through payouts
// and refunds.
func (m *Market) BalanceOf(addr common.Address) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.escrow.balance(addr)
}

// TotalEscrowed reports the value currently held across all bounty pots.
func (m *Market) TotalEscrowed() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.escrow.total
}

func (m *Market) event(t EventType, b *Bounty, claimID uint64, addr common.Address, amount int64) Event {
	return Event{
		Type:     t,
		BountyID: b.ID,
		ClaimID:  claimID,
		Address:  addr,
		Amount:   amount,
		At:       m.now(),
	}
}
