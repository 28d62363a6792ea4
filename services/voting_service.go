package services

import (
	"bounty-board-service/market"

	"github.com/gofiber/fiber/v2"
)

type VotingService struct {
	Market *market.Market
	Mirror *Mirror
}

func NewVotingService(m *market.Market, mirror *Mirror) *VotingService {
	return &VotingService{Market: m, Mirror: mirror}
}

func (s *VotingService) SubmitClaimForVote(c *fiber.Ctx) error {
	caller, ok := callerAddress(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "wallet address missing"})
	}
	bountyID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}
	claimID, err := paramID(c, "claim_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid claim id"})
	}

	events, err := s.Market.SubmitClaimForVote(caller, bountyID, claimID)
	if err != nil {
		return marketError(c, err)
	}
	s.Mirror.Record(events)

	round, _ := s.Market.Voting(bountyID)
	return c.JSON(round)
}

type voteRequest struct {
	Yes *bool `json:"yes"`
}

func (s *VotingService) VoteClaim(c *fiber.Ctx) error {
	caller, ok := callerAddress(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "wallet address missing"})
	}
	bountyID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}
	var req voteRequest
	if err := c.BodyParser(&req); err != nil || req.Yes == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "yes is required"})
	}

	events, err := s.Market.VoteClaim(caller, bountyID, *req.Yes)
	if err != nil {
		return marketError(c, err)
	}
	s.Mirror.Record(events)

	round, _ := s.Market.Voting(bountyID)
	return c.JSON(round)
}

// ResolveVote settles an expired round on demand. The deadline scheduler
// calls the same market operation; exposing it keeps resolution available
// even if the scheduler is down.
func (s *VotingService) ResolveVote(c *fiber.Ctx) error {
	bountyID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}

	events, err := s.Market.ResolveVote(bountyID)
	if err != nil {
		return marketError(c, err)
	}
	s.Mirror.Record(events)

	b, _ := s.Market.GetBounty(bountyID)
	return c.JSON(b)
}

func (s *VotingService) ResetVotingPeriod(c *fiber.Ctx) error {
	caller, ok := callerAddress(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "wallet address missing"})
	}
	bountyID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}

	events, err := s.Market.ResetVotingPeriod(caller, bountyID)
	if err != nil {
		return marketError(c, err)
	}
	s.Mirror.Record(events)

	return c.JSON(fiber.Map{"status": "reset", "bounty_id": bountyID})
}
