package services

import (
	"bounty-board-service/market"

	"github.com/gofiber/fiber/v2"
)

type BountyService struct {
	Market *market.Market
	Mirror *Mirror
}

func NewBountyService(m *market.Market, mirror *Mirror) *BountyService {
	return &BountyService{Market: m, Mirror: mirror}
}

type createBountyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

func (s *BountyService) CreateSoloBounty(c *fiber.Ctx) error {
	return s.createBounty(c, market.SoloBounty)
}

func (s *BountyService) CreateOpenBounty(c *fiber.Ctx) error {
	return s.createBounty(c, market.OpenBounty)
}

func (s *BountyService) createBounty(c *fiber.Ctx, kind market.BountyKind) error {
	caller, ok := callerAddress(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "wallet address missing"})
	}

	var req createBountyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	var (
		b      market.Bounty
		events []market.Event
		err    error
	)
	if kind == market.SoloBounty {
		b, events, err = s.Market.CreateSoloBounty(caller, req.Name, req.Description, req.Amount)
	} else {
		b, events, err = s.Market.CreateOpenBounty(caller, req.Name, req.Description, req.Amount)
	}
	if err != nil {
		return marketError(c, err)
	}
	s.Mirror.Record(events)

	return c.Status(fiber.StatusCreated).JSON(b)
}

func (s *BountyService) CancelSoloBounty(c *fiber.Ctx) error {
	caller, ok := callerAddress(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "wallet address missing"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}

	events, err := s.Market.CancelSoloBounty(caller, id)
	if err != nil {
		return marketError(c, err)
	}
	s.Mirror.Record(events)

	return c.JSON(fiber.Map{"status": "cancelled", "bounty_id": id})
}

func (s *BountyService) CancelOpenBounty(c *fiber.Ctx) error {
	caller, ok := callerAddress(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "wallet address missing"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}

	events, err := s.Market.CancelOpenBounty(caller, id)
	if err != nil {
		return marketError(c, err)
	}
	s.Mirror.Record(events)

	return c.JSON(fiber.Map{"status": "cancelled", "bounty_id": id})
}

type joinBountyRequest struct {
	Amount int64 `json:"amount"`
}

func (s *BountyService) JoinBounty(c *fiber.Ctx) error {
	caller, ok := callerAddress(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "wallet address missing"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}
	var req joinBountyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	events, err := s.Market.JoinOpenBounty(caller, id, req.Amount)
	if err != nil {
		return marketError(c, err)
	}
	s.Mirror.Record(events)

	return c.JSON(fiber.Map{"status": "joined", "bounty_id": id, "amount": req.Amount})
}

func (s *BountyService) WithdrawFromBounty(c *fiber.Ctx) error {
	caller, ok := callerAddress(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "wallet address missing"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}

	events, err := s.Market.WithdrawFromOpenBounty(caller, id)
	if err != nil {
		return marketError(c, err)
	}
	s.Mirror.Record(events)

	return c.JSON(fiber.Map{"status": "withdrawn", "bounty_id": id})
}
