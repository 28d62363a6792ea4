package market

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// escrow holds the native-asset value attributed to bounties, plus a credit
// ledger of value paid out or refunded to addresses. Invariant: total always
// equals the sum of live bounty pots — value only enters through deposit and
// only leaves through payout/refund, in the same critical section as the
// record mutation that authorizes it.
type escrow struct {
	pots     map[uint64]int64
	balances map[common.Address]int64
	total    int64
}

func newEscrow() *escrow {
	return &escrow{
		pots:     make(map[uint64]int64),
		balances: make(map[common.Address]int64),
	}
}

func (e *escrow) deposit(bountyID uint64, amount int64) {
	if amount <= 0 {
		panic(fmt.Sprintf("escrow: deposit of %d to bounty %d", amount, bountyID))
	}
	e.pots[bountyID] += amount
	e.total += amount
}

// payout moves value from a bounty pot to an address credit. Also used for
// refunds; the distinction is the event emitted by the caller.
func (e *escrow) payout(bountyID uint64, to common.Address, amount int64) {
	if amount < 0 || amount > e.pots[bountyID] {
		panic(fmt.Sprintf("escrow: payout of %d from bounty %d holding %d", amount, bountyID, e.pots[bountyID]))
	}
	e.pots[bountyID] -= amount
	e.balances[to] += amount
	e.total -= amount
}

func (e *escrow) pot(bountyID uint64) int64 {
	return e.pots[bountyID]
}

func (e *escrow) balance(addr common.Address) int64 {
	return e.balances[addr]
}
