package handlers

import (
	"bounty-board-service/middleware"
	"bounty-board-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBountyRoutes(
	app *fiber.App,
	bountyService *services.BountyService,
	claimService *services.ClaimService,
	votingService *services.VotingService,
	queryService *services.QueryService,
) {
	// Public read surface
	app.Get("/bounties", queryService.GetBounties)
	app.Get("/bounties/:id", queryService.GetBounty)
	app.Get("/bounties/:id/claims", queryService.GetBountyClaims)
	app.Get("/bounties/:id/participants", queryService.GetBountyParticipants)
	app.Get("/bounties/:id/voting", queryService.GetBountyVoting)
	app.Get("/bounties/:id/events", queryService.GetBountyEvents)
	app.Get("/bounties/:id/receipt", queryService.GetReceipt)
	app.Get("/claims/:id", queryService.GetClaim)
	app.Get("/accounts/:address/balance", queryService.GetBalance)

	// Anyone may settle an expired round; no wallet context needed.
	app.Post("/bounties/:id/resolve", votingService.ResolveVote)

	// Mutations require the wallet identity forwarded by the Gateway.
	secured := app.Group("/", middleware.WalletContextMiddleware())

	secured.Post("/bounties/solo", bountyService.CreateSoloBounty)
	secured.Post("/bounties/open", bountyService.CreateOpenBounty)
	secured.Delete("/bounties/solo/:id", bountyService.CancelSoloBounty)
	secured.Delete("/bounties/open/:id", bountyService.CancelOpenBounty)
	secured.Post("/bounties/:id/join", bountyService.JoinBounty)
	secured.Post("/bounties/:id/withdraw", bountyService.WithdrawFromBounty)

	secured.Post("/bounties/:id/claims", claimService.CreateClaim)
	secured.Post("/bounties/:id/claims/:claim_id/accept", claimService.AcceptClaim)

	secured.Post("/bounties/:id/claims/:claim_id/submit-vote", votingService.SubmitClaimForVote)
	secured.Post("/bounties/:id/vote", votingService.VoteClaim)
	secured.Post("/bounties/:id/reset-voting", votingService.ResetVotingPeriod)
}
