package codes

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"POS", PointOfSale},
		{"MST", DebitCard},
		{"ICT", FASTReceipt},
		{"ITR", FundsTransfer},
		{"IBG", InterbankGIRO},
		{"AWL", ATMWithdrawal},
		{"ZZZ", "ZZZ"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := Resolve(tt.code); got != tt.expected {
				t.Errorf("Resolve(%q) = %q, want %q", tt.code, got, tt.expected)
			}
		})
	}
}

func TestKnown(t *testing.T) {
	if !Known("POS") {
		t.Error("POS should be a known code")
	}
	if Known("ZZZ") {
		t.Error("ZZZ should not be a known code")
	}
}
