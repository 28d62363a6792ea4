package market

import "fmt"

// ComputeFee splits amount into the protocol fee and the net payout.
// Pure integer arithmetic, fee truncated toward zero, so the rounding
// remainder always lands in the net payout and fee+net == amount exactly.
// Split as quotient+remainder to stay exact without overflowing int64.
func ComputeFee(amount, feeNumerator, feeDenominator int64) (fee, net int64) {
	if feeDenominator <= 0 || feeNumerator < 0 || feeNumerator > feeDenominator {
		panic(fmt.Sprintf("fee: invalid ratio %d/%d", feeNumerator, feeDenominator))
	}
	if amount < 0 {
		panic(fmt.Sprintf("fee: negative amount %d", amount))
	}
	fee = amount/feeDenominator*feeNumerator + amount%feeDenominator*feeNumerator/feeDenominator
	return fee, amount - fee
}
