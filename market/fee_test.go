package market

import "testing"

func TestComputeFee_SplitsExactly(t *testing.T) {
	cases := []struct {
		amount, num, den int64
		wantFee, wantNet int64
	}{
		{1000, 25, 1000, 25, 975},
		{1, 25, 1000, 0, 1},        // remainder goes to net
		{1999, 25, 1000, 49, 1950}, // truncation toward zero
		{0, 25, 1000, 0, 0},
		{1000000000000000000, 25, 1000, 25000000000000000, 975000000000000000},
		{7, 0, 1000, 0, 7},    // zero fee configured
		{7, 1000, 1000, 7, 0}, // full fee
	}
	for _, c := range cases {
		fee, net := ComputeFee(c.amount, c.num, c.den)
		if fee != c.wantFee || net != c.wantNet {
			t.Fatalf("ComputeFee(%d, %d, %d) = (%d, %d), want (%d, %d)",
				c.amount, c.num, c.den, fee, net, c.wantFee, c.wantNet)
		}
		if fee+net != c.amount {
			t.Fatalf("ComputeFee(%d, %d, %d): fee %d + net %d != amount", c.amount, c.num, c.den, fee, net)
		}
	}
}

func TestComputeFee_ConservesAcrossRange(t *testing.T) {
	for amount := int64(0); amount < 5000; amount++ {
		fee, net := ComputeFee(amount, 25, 1000)
		if fee+net != amount {
			t.Fatalf("amount %d: fee %d + net %d leaks value", amount, fee, net)
		}
		if fee < 0 || net < 0 {
			t.Fatalf("amount %d: negative split (%d, %d)", amount, fee, net)
		}
	}
}

func TestComputeFee_InvalidRatioPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	ComputeFee(100, 1001, 1000)
}
