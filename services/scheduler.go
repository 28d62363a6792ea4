package services

import (
	"errors"
	"time"

	"bounty-board-service/logger"
	"bounty-board-service/market"
	"bounty-board-service/models"

	"github.com/go-co-op/gocron/v2"
)

// StartDeadlineScheduler sweeps expired voting rounds once a minute and
// resolves them. The market never runs its own timers; this job is the clock
// signal that turns passed deadlines into settled bounties.
func (s *VotingService) StartDeadlineScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			var bounties []models.Bounty
			now := time.Now()
			err := s.Mirror.DB.
				Where("voting_open = ? AND voting_deadline <= ?", true, now).
				Find(&bounties).Error
			if err != nil {
				logger.Error("[Scheduler] DB error: %v", err)
				return
			}

			for _, b := range bounties {
				events, err := s.Market.ResolveVote(b.ID)
				if err != nil {
					// A racing manual resolve or a just-extended deadline is
					// expected; resync the mirror row and move on.
					if errors.Is(err, market.ErrNotVoting) ||
						errors.Is(err, market.ErrAlreadyClosed) ||
						errors.Is(err, market.ErrVotingInProgress) {
						s.Mirror.syncBounty(b.ID)
						continue
					}
					logger.Error("[Scheduler] Failed to resolve vote on bounty %d: %v", b.ID, err)
					continue
				}
				s.Mirror.Record(events)
				logger.Info("[Scheduler] Resolved expired voting round on bounty %d", b.ID)
			}
		}),
	)
}
