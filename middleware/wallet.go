package middleware

import (
	"bounty-board-service/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
)

// WalletLocalKey is the Locals slot holding the caller's common.Address.
const WalletLocalKey = "wallet_address"

// WalletContextMiddleware extracts the caller identity set by the Gateway.
// The Gateway has already verified the wallet signature; this service only
// checks the header is a well-formed address and attaches it for handlers.
func WalletContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := c.Get("X-Wallet-Address")
		if wallet == "" {
			logger.Warn("[WALLET_CTX] X-Wallet-Address missing on %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-Wallet-Address — request must come through gateway with wallet context",
			})
		}
		if !common.IsHexAddress(wallet) {
			logger.Warn("[WALLET_CTX] malformed wallet address %q on %s", wallet, c.Path())
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "malformed X-Wallet-Address",
			})
		}

		c.Locals(WalletLocalKey, common.HexToAddress(wallet))
		return c.Next()
	}
}
