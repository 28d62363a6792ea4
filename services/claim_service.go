package services

import (
	"path/filepath"

	"bounty-board-service/market"
	"bounty-board-service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ClaimService struct {
	Market *market.Market
	Mirror *Mirror
}

func NewClaimService(m *market.Market, mirror *Mirror) *ClaimService {
	return &ClaimService{Market: m, Mirror: mirror}
}

// CreateClaim records a proof-of-work submission. The evidence location comes
// either as a `uri` form value or as an uploaded `evidence` file, which is
// pushed to R2 and referenced by its CDN URL.
func (s *ClaimService) CreateClaim(c *fiber.Ctx) error {
	caller, ok := callerAddress(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "wallet address missing"})
	}
	bountyID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}

	name := c.FormValue("name")
	description := c.FormValue("description")
	uri := c.FormValue("uri")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	if uri == "" {
		if evidence, err := c.FormFile("evidence"); err == nil && evidence.Size > 0 {
			ext := filepath.Ext(evidence.Filename)
			key := "claims/evidence/" + uuid.NewString() + ext
			url, err := utils.UploadFileToR2(evidence, key)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload evidence"})
			}
			uri = url
		}
	}

	claim, events, err := s.Market.CreateClaim(caller, bountyID, name, description, uri)
	if err != nil {
		return marketError(c, err)
	}
	s.Mirror.Record(events)

	return c.Status(fiber.StatusCreated).JSON(claim)
}

// AcceptClaim resolves the bounty in the claimant's favor without a vote:
// the issuer of a solo bounty, or the sole remaining participant of an open
// one.
func (s *ClaimService) AcceptClaim(c *fiber.Ctx) error {
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

	events, err := s.Market.AcceptClaim(caller, bountyID, claimID)
	if err != nil {
		return marketError(c, err)
	}
	s.Mirror.Record(events)

	return c.JSON(fiber.Map{"status": "accepted", "bounty_id": bountyID, "claim_id": claimID})
}
