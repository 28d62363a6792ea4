package services

import (
	"bounty-board-service/market"
	"bounty-board-service/models"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// QueryService is the read-only surface. Live state comes straight from the
// market; historic data (the event journal, receipt queue) comes from the
// Postgres mirror.
type QueryService struct {
	DB     *gorm.DB
	Market *market.Market
}

func NewQueryService(db *gorm.DB, m *market.Market) *QueryService {
	return &QueryService{DB: db, Market: m}
}

func (s *QueryService) GetBounties(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)
	if offset < 0 || limit < 0 || limit > 200 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid offset or limit"})
	}
	bounties := s.Market.ListBounties(offset, limit)
	return c.JSON(fiber.Map{"bounties": bounties, "offset": offset, "limit": limit})
}

func (s *QueryService) GetBounty(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}
	b, err := s.Market.GetBounty(id)
	if err != nil {
		return marketError(c, err)
	}
	return c.JSON(b)
}

func (s *QueryService) GetBountyClaims(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}
	claims, err := s.Market.ClaimsByBounty(id)
	if err != nil {
		return marketError(c, err)
	}
	return c.JSON(fiber.Map{"claims": claims})
}

func (s *QueryService) GetBountyParticipants(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}
	participants, err := s.Market.Participants(id)
	if err != nil {
		return marketError(c, err)
	}
	return c.JSON(fiber.Map{"participants": participants})
}

func (s *QueryService) GetBountyVoting(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}
	round, err := s.Market.Voting(id)
	if err != nil {
		return marketError(c, err)
	}
	return c.JSON(round)
}

// GetBountyEvents pages the journal of one bounty, oldest first.
func (s *QueryService) GetBountyEvents(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}
	if _, err := s.Market.GetBounty(id); err != nil {
		return marketError(c, err)
	}

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 100)
	var events []models.MarketEvent
	err = s.DB.Where("bounty_id = ?", id).
		Order("id asc").
		Offset(offset).
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load events"})
	}
	return c.JSON(fiber.Map{"events": events})
}

func (s *QueryService) GetClaim(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid claim id"})
	}
	claim, err := s.Market.GetClaim(id)
	if err != nil {
		return marketError(c, err)
	}
	return c.JSON(claim)
}

// GetBalance reports the escrow credits paid out to an address.
func (s *QueryService) GetBalance(c *fiber.Ctx) error {
	addr := c.Params("address")
	if !common.IsHexAddress(addr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid address"})
	}
	balance := s.Market.BalanceOf(common.HexToAddress(addr))
	return c.JSON(fiber.Map{"address": common.HexToAddress(addr).Hex(), "balance": balance})
}

// GetReceipt looks up a completion receipt by bounty id.
func (s *QueryService) GetReceipt(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}
	var receipt models.ReceiptToken
	if err := s.DB.Where("bounty_id = ?", id).First(&receipt).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no receipt for bounty"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load receipt"})
	}
	return c.JSON(receipt)
}
