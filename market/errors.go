package market

import "errors"

// Sentinel errors for every precondition the marketplace checks. Handlers
// match these with errors.Is to pick an HTTP status.
var (
	ErrNotFound         = errors.New("bounty or claim not found")
	ErrWrongCaller      = errors.New("caller is not authorized for this operation")
	ErrWrongKind        = errors.New("operation does not apply to this bounty kind")
	ErrNoFunds          = errors.New("a positive amount is required")
	ErrAlreadyClosed    = errors.New("bounty is already closed")
	ErrAlreadyJoined    = errors.New("address is already an active participant")
	ErrAlreadyVoted     = errors.New("address already voted in this round")
	ErrVotingInProgress = errors.New("a voting round is in progress")
	ErrNotVoting        = errors.New("no voting round is in progress")
	ErrNotParticipant   = errors.New("address is not an active participant")
	ErrNoParticipants   = errors.New("bounty has no active participants")
)
