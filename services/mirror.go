package services

import (
	"errors"
	"time"

	"bounty-board-service/logger"
	"bounty-board-service/market"
	"bounty-board-service/models"

	"github.com/gosimple/slug"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Mirror keeps the Postgres read model in step with the in-memory market.
// Handlers hand it the events of each accepted mutation; it re-reads the
// affected records from the market and upserts them, so a replayed or
// reordered task converges on the current state instead of an event-order
// dependent one.
type Mirror struct {
	DB     *gorm.DB
	Market *market.Market
	pool   *ants.Pool
}

func NewMirror(db *gorm.DB, m *market.Market) (*Mirror, error) {
	pool, err := ants.NewPool(8)
	if err != nil {
		return nil, err
	}
	return &Mirror{DB: db, Market: m, pool: pool}, nil
}

func (mr *Mirror) Close() {
	mr.pool.Release()
}

// Record journals the events and refreshes the mirrored rows asynchronously.
func (mr *Mirror) Record(events []market.Event) {
	for _, ev := range events {
		ev := ev
		if err := mr.pool.Submit(func() { mr.apply(ev) }); err != nil {
			// Pool saturated or released; fall back to inline.
			mr.apply(ev)
		}
	}
}

func (mr *Mirror) apply(ev market.Event) {
	row := models.MarketEvent{
		EventType: string(ev.Type),
		BountyID:  ev.BountyID,
		ClaimID:   ev.ClaimID,
		Address:   ev.Address.Hex(),
		Amount:    ev.Amount,
		Yes:       ev.Yes,
		At:        ev.At,
	}
	if err := mr.DB.Create(&row).Error; err != nil {
		logger.Error("mirror: failed to journal %s event for bounty %d: %v", ev.Type, ev.BountyID, err)
	}

	mr.syncBounty(ev.BountyID)

	switch ev.Type {
	case market.EventClaimCreated:
		mr.syncClaim(ev.ClaimID)
	case market.EventBountyCreated, market.EventBountyJoined, market.EventWithdrawFromBounty:
		mr.syncParticipants(ev.BountyID)
	case market.EventBountyCancelled:
		mr.syncParticipants(ev.BountyID)
	case market.EventClaimAccepted:
		mr.syncClaim(ev.ClaimID)
		mr.syncParticipants(ev.BountyID)
	}
}

func (mr *Mirror) syncBounty(id uint64) {
	b, err := mr.Market.GetBounty(id)
	if err != nil {
		logger.Error("mirror: bounty %d vanished from market: %v", id, err)
		return
	}
	row := models.Bounty{
		ID:              b.ID,
		Slug:            slug.Make(b.Name),
		Issuer:          b.Issuer.Hex(),
		Name:            b.Name,
		Description:     b.Description,
		Amount:          b.Amount,
		Kind:            string(b.Kind),
		AcceptedClaimID: b.AcceptedClaimID,
		Closed:          b.Closed,
		CreatedAt:       b.CreatedAt,
	}
	if b.AcceptedClaimID != 0 {
		row.Claimer = b.Claimer.Hex()
	}
	if b.Kind == market.OpenBounty {
		if r, err := mr.Market.Voting(id); err == nil {
			row.VotingOpen = r.Open
			row.VotingClaimID = r.ClaimID
			row.VotingYes = r.Yes
			row.VotingNo = r.No
			if r.Open {
				deadline := r.Deadline
				row.VotingDeadline = &deadline
			}
		}
	}
	err = mr.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"slug", "issuer", "name", "description", "amount", "kind",
			"claimer", "accepted_claim_id", "closed",
			"voting_open", "voting_claim_id", "voting_deadline",
			"voting_yes", "voting_no", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		logger.Error("mirror: failed to upsert bounty %d: %v", id, err)
	}
}

func (mr *Mirror) syncClaim(id uint64) {
	c, err := mr.Market.GetClaim(id)
	if err != nil {
		logger.Error("mirror: claim %d vanished from market: %v", id, err)
		return
	}
	row := models.Claim{
		ID:          c.ID,
		BountyID:    c.BountyID,
		Issuer:      c.Issuer.Hex(),
		Name:        c.Name,
		Description: c.Description,
		URI:         c.URI,
		Accepted:    c.Accepted,
		CreatedAt:   c.CreatedAt,
	}
	err = mr.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"accepted", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		logger.Error("mirror: failed to upsert claim %d: %v", id, err)
	}
}

func (mr *Mirror) syncParticipants(bountyID uint64) {
	parts, err := mr.Market.Participants(bountyID)
	if err != nil {
		if errors.Is(err, market.ErrWrongKind) {
			return // solo bounties have no participant slots
		}
		logger.Error("mirror: failed to read participants of bounty %d: %v", bountyID, err)
		return
	}
	for _, p := range parts {
		row := models.Participant{
			BountyID: bountyID,
			Address:  p.Address.Hex(),
			Amount:   p.Amount,
			Active:   p.Active,
		}
		err := mr.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "bounty_id"}, {Name: "address"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "active", "updated_at"}),
		}).Create(&row).Error
		if err != nil {
			logger.Error("mirror: failed to upsert participant %s of bounty %d: %v", p.Address.Hex(), bountyID, err)
		}
	}
}

// WaitIdle blocks until the pool has drained, bounded by timeout. Test and
// shutdown helper.
func (mr *Mirror) WaitIdle(timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for mr.pool.Running() > 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
}
