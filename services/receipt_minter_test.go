package services

import (
	"strings"
	"testing"
)

func TestReceiptTokenID_Deterministic(t *testing.T) {
	a := ReceiptTokenID(7, 3)
	b := ReceiptTokenID(7, 3)
	if a != b {
		t.Fatalf("same ids produced different tokens: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "0x") || len(a) != 66 {
		t.Fatalf("token id is not a 32-byte hex hash: %s", a)
	}
}

func TestReceiptTokenID_DistinguishesPairs(t *testing.T) {
	// (7,3) and (3,7) must not collide: the ids are fixed-width fields, not
	// concatenated digits.
	if ReceiptTokenID(7, 3) == ReceiptTokenID(3, 7) {
		t.Fatalf("swapped ids collided")
	}
	if ReceiptTokenID(1, 23) == ReceiptTokenID(12, 3) {
		t.Fatalf("adjacent digit split collided")
	}
}
