package market

import (
	"errors"
	"testing"
	"time"
)

// openBountyWithClaim sets up an open bounty with alice and bob joined and a
// claim by carol, returning the bounty and claim ids.
func openBountyWithClaim(t *testing.T, m *Market) (uint64, uint64) {
	t.Helper()
	b, _, err := m.CreateOpenBounty(issuer, "Open", "Description", ether)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := m.JoinOpenBounty(alice, b.ID, ether); err != nil {
		t.Fatalf("join alice: %v", err)
	}
	if _, err := m.JoinOpenBounty(bob, b.ID, ether); err != nil {
		t.Fatalf("join bob: %v", err)
	}
	c, _, err := m.CreateClaim(carol, b.ID, "Claim", "proof", "ipfs://evidence")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	return b.ID, c.ID
}

func TestSubmitClaimForVote_Preconditions(t *testing.T) {
	m, _, _ := newTestMarket(t)
	bountyID, claimID := openBountyWithClaim(t, m)

	if _, err := m.SubmitClaimForVote(alice, 99, claimID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := m.SubmitClaimForVote(alice, bountyID, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// carol claimed but never contributed, so she cannot submit.
	if _, err := m.SubmitClaimForVote(carol, bountyID, claimID); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	if _, err := m.SubmitClaimForVote(alice, bountyID, claimID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// One round at a time.
	if _, err := m.SubmitClaimForVote(bob, bountyID, claimID); !errors.Is(err, ErrVotingInProgress) {
		t.Fatalf("expected ErrVotingInProgress, got %v", err)
	}
}

func TestSubmitClaimForVote_WrongKind(t *testing.T) {
	m, _, _ := newTestMarket(t)
	b, _, _ := m.CreateSoloBounty(issuer, "Solo", "Description", ether)
	c, _, _ := m.CreateClaim(alice, b.ID, "Claim", "proof", "")
	if _, err := m.SubmitClaimForVote(issuer, b.ID, c.ID); !errors.Is(err, ErrWrongKind) {
		t.Fatalf("expected ErrWrongKind, got %v", err)
	}
}

func TestSubmitClaimForVote_StartsWithZeroTallies(t *testing.T) {
	m, clock, _ := newTestMarket(t)
	bountyID, claimID := openBountyWithClaim(t, m)

	if _, err := m.SubmitClaimForVote(alice, bountyID, claimID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err := m.Voting(bountyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Open || r.ClaimID != claimID || r.Yes != 0 || r.No != 0 {
		t.Fatalf("bad round: %+v", r)
	}
	if want := clock.Now().Add(DefaultVotingWindow); !r.Deadline.Equal(want) {
		t.Fatalf("deadline %v, want %v", r.Deadline, want)
	}
}

func TestVoteClaim_WeightedByContribution(t *testing.T) {
	m, _, _ := newTestMarket(t)
	b, _, _ := m.CreateOpenBounty(issuer, "Open", "Description", ether)
	m.JoinOpenBounty(alice, b.ID, 3*ether)
	c, _, _ := m.CreateClaim(carol, b.ID, "Claim", "proof", "")
	m.SubmitClaimForVote(issuer, b.ID, c.ID)

	if _, err := m.VoteClaim(issuer, b.ID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events, err := m.VoteClaim(alice, b.ID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].Type != EventVoteClaim || events[0].Amount != 3*ether || events[0].Yes {
		t.Fatalf("bad events: %+v", events)
	}
	r, _ := m.Voting(b.ID)
	if r.Yes != ether || r.No != 3*ether {
		t.Fatalf("tally (%d, %d), want (%d, %d)", r.Yes, r.No, ether, 3*ether)
	}
}

func TestVoteClaim_Preconditions(t *testing.T) {
	m, clock, _ := newTestMarket(t)
	bountyID, claimID := openBountyWithClaim(t, m)

	// No round yet.
	if _, err := m.VoteClaim(alice, bountyID, true); !errors.Is(err, ErrNotVoting) {
		t.Fatalf("expected ErrNotVoting, got %v", err)
	}
	m.SubmitClaimForVote(alice, bountyID, claimID)

	if _, err := m.VoteClaim(carol, bountyID, true); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	if _, err := m.VoteClaim(alice, bountyID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.VoteClaim(alice, bountyID, false); !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}

	// Deadline passed: votes close even before anyone resolves.
	clock.Advance(DefaultVotingWindow)
	if _, err := m.VoteClaim(bob, bountyID, true); !errors.Is(err, ErrNotVoting) {
		t.Fatalf("expected ErrNotVoting, got %v", err)
	}
}

func TestResolveVote_MajorityAcceptsAndPaysOut(t *testing.T) {
	m, clock, minter := newTestMarket(t)
	bountyID, claimID := openBountyWithClaim(t, m)
	pot := int64(3) * ether

	m.SubmitClaimForVote(alice, bountyID, claimID)
	m.VoteClaim(issuer, bountyID, true)
	m.VoteClaim(alice, bountyID, true)
	m.VoteClaim(bob, bountyID, false)

	// Too early.
	if _, err := m.ResolveVote(bountyID); !errors.Is(err, ErrVotingInProgress) {
		t.Fatalf("expected ErrVotingInProgress, got %v", err)
	}
	clock.Advance(DefaultVotingWindow + time.Minute)

	events, err := m.ResolveVote(bountyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fee, net := ComputeFee(pot, 25, 1000)
	if got := m.BalanceOf(carol); got != net {
		t.Fatalf("claimant credited %d, want %d", got, net)
	}
	if got := m.BalanceOf(treasury); got != fee {
		t.Fatalf("treasury credited %d, want %d", got, fee)
	}
	if m.TotalEscrowed() != 0 {
		t.Fatalf("escrow leaked %d", m.TotalEscrowed())
	}
	b, _ := m.GetBounty(bountyID)
	if !b.Closed || b.Claimer != carol || b.AcceptedClaimID != claimID {
		t.Fatalf("bad resolution: %+v", b)
	}
	if len(minter.calls) != 1 || minter.calls[0] != (mintCall{carol, bountyID, claimID}) {
		t.Fatalf("bad mint calls: %+v", minter.calls)
	}
	if len(events) != 1 || events[0].Type != EventClaimAccepted || events[0].Amount != net {
		t.Fatalf("bad events: %+v", events)
	}

	// Resolution is terminal.
	if _, err := m.ResolveVote(bountyID); !errors.Is(err, ErrAlreadyClosed) {
		t.Fatalf("expected ErrAlreadyClosed, got %v", err)
	}
	if len(minter.calls) != 1 {
		t.Fatalf("minted twice: %+v", minter.calls)
	}
}

func TestResolveVote_TieRejectsWithoutMovingFunds(t *testing.T) {
	m, clock, minter := newTestMarket(t)
	bountyID, claimID := openBountyWithClaim(t, m)
	pot := int64(3) * ether

	m.SubmitClaimForVote(alice, bountyID, claimID)
	m.VoteClaim(alice, bountyID, true)
	m.VoteClaim(bob, bountyID, false)
	clock.Advance(DefaultVotingWindow)

	events, err := m.ResolveVote(bountyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].Type != EventVotingPeriodReset {
		t.Fatalf("bad events: %+v", events)
	}
	if len(minter.calls) != 0 {
		t.Fatalf("tie minted: %+v", minter.calls)
	}
	if got := m.BalanceOf(carol); got != 0 {
		t.Fatalf("claimant credited %d on a tie", got)
	}
	if m.TotalEscrowed() != pot {
		t.Fatalf("escrow holds %d, want %d", m.TotalEscrowed(), pot)
	}
	b, _ := m.GetBounty(bountyID)
	if b.Closed || b.Amount != pot {
		t.Fatalf("bounty touched by a tie: %+v", b)
	}
	r, _ := m.Voting(bountyID)
	if r.Open || r.ClaimID != 0 || r.Yes != 0 || r.No != 0 {
		t.Fatalf("round not cleared: %+v", r)
	}

	// The bounty is votable again.
	if _, err := m.SubmitClaimForVote(bob, bountyID, claimID); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
}

func TestResolveVote_NoRound(t *testing.T) {
	m, _, _ := newTestMarket(t)
	bountyID, _ := openBountyWithClaim(t, m)
	if _, err := m.ResolveVote(bountyID); !errors.Is(err, ErrNotVoting) {
		t.Fatalf("expected ErrNotVoting, got %v", err)
	}
}

func TestWithdrawnParticipantCarriesNoWeight(t *testing.T) {
	m, clock, _ := newTestMarket(t)
	bountyID, claimID := openBountyWithClaim(t, m)

	// bob leaves before any round opens; his old contribution must not count.
	if _, err := m.WithdrawFromOpenBounty(bob, bountyID); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	m.SubmitClaimForVote(alice, bountyID, claimID)
	if _, err := m.VoteClaim(bob, bountyID, false); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	m.VoteClaim(alice, bountyID, true)
	m.VoteClaim(issuer, bountyID, false)

	// Withdrawal stays locked while the round runs.
	if _, err := m.WithdrawFromOpenBounty(alice, bountyID); !errors.Is(err, ErrVotingInProgress) {
		t.Fatalf("expected ErrVotingInProgress, got %v", err)
	}

	clock.Advance(DefaultVotingWindow)
	if _, err := m.ResolveVote(bountyID); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	// 1:1 weights tie and reject.
	b, _ := m.GetBounty(bountyID)
	if b.Closed {
		t.Fatalf("tie closed the bounty")
	}
}

func TestResetVotingPeriod_IssuerOnly(t *testing.T) {
	m, _, _ := newTestMarket(t)
	bountyID, claimID := openBountyWithClaim(t, m)

	if _, err := m.ResetVotingPeriod(issuer, bountyID); !errors.Is(err, ErrNotVoting) {
		t.Fatalf("expected ErrNotVoting, got %v", err)
	}
	m.SubmitClaimForVote(alice, bountyID, claimID)
	m.VoteClaim(alice, bountyID, true)

	if _, err := m.ResetVotingPeriod(alice, bountyID); !errors.Is(err, ErrWrongCaller) {
		t.Fatalf("expected ErrWrongCaller, got %v", err)
	}
	events, err := m.ResetVotingPeriod(issuer, bountyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].Type != EventVotingPeriodReset {
		t.Fatalf("bad events: %+v", events)
	}
	r, _ := m.Voting(bountyID)
	if r.Open || r.Yes != 0 {
		t.Fatalf("round not cleared: %+v", r)
	}
	if m.TotalEscrowed() != 3*ether {
		t.Fatalf("reset moved funds: %d", m.TotalEscrowed())
	}
}
