package services

import (
	"net/http/httptest"
	"testing"

	"bounty-board-service/market"

	"github.com/gofiber/fiber/v2"
)

func TestMarketError_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{market.ErrNotFound, fiber.StatusNotFound},
		{market.ErrWrongCaller, fiber.StatusForbidden},
		{market.ErrNotParticipant, fiber.StatusForbidden},
		{market.ErrWrongKind, fiber.StatusBadRequest},
		{market.ErrNoFunds, fiber.StatusBadRequest},
		{market.ErrAlreadyClosed, fiber.StatusConflict},
		{market.ErrAlreadyJoined, fiber.StatusConflict},
		{market.ErrAlreadyVoted, fiber.StatusConflict},
		{market.ErrVotingInProgress, fiber.StatusConflict},
		{market.ErrNotVoting, fiber.StatusConflict},
		{market.ErrNoParticipants, fiber.StatusConflict},
	}

	for _, tc := range cases {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			return marketError(c, tc.err)
		})
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		if err != nil {
			t.Fatalf("%v: %v", tc.err, err)
		}
		if resp.StatusCode != tc.want {
			t.Fatalf("%v mapped to %d, want %d", tc.err, resp.StatusCode, tc.want)
		}
	}
}
