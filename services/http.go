package services

import (
	"errors"
	"strconv"

	"bounty-board-service/market"
	"bounty-board-service/middleware"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
)

func callerAddress(c *fiber.Ctx) (common.Address, bool) {
	addr, ok := c.Locals(middleware.WalletLocalKey).(common.Address)
	return addr, ok
}

func paramID(c *fiber.Ctx, name string) (uint64, error) {
	return strconv.ParseUint(c.Params(name), 10, 64)
}

// marketError translates core sentinel errors into HTTP responses. Anything
// unrecognized is a 500.
func marketError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, market.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, market.ErrWrongCaller),
		errors.Is(err, market.ErrNotParticipant):
		status = fiber.StatusForbidden
	case errors.Is(err, market.ErrWrongKind),
		errors.Is(err, market.ErrNoFunds):
		status = fiber.StatusBadRequest
	case errors.Is(err, market.ErrAlreadyClosed),
		errors.Is(err, market.ErrAlreadyJoined),
		errors.Is(err, market.ErrAlreadyVoted),
		errors.Is(err, market.ErrVotingInProgress),
		errors.Is(err, market.ErrNotVoting),
		errors.Is(err, market.ErrNoParticipants):
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
