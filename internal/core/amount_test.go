package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
	}{
		{"100.50", 100.5},
		{"0", 0},
		{"49.50", 49.5},
		{"1200", 1200},
		{" 2.50 ", 2.5},
		{"12.34xy", 12.34},
		{"12.34.56", 12.34},
		{"-5", -5},
		{"abc", 0},
		{"", 0},
		{".", 0},
		{"+.", 0},
		{".5", 0.5},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); got != tc.out {
			t.Fatalf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.out)
		}
	}
}

func TestTotalIncomeTreatsUnparseableAsZero(t *testing.T) {
	entries := []DrawingEntry{
		{Amount: "100.50"},
		{Amount: "abc"},
		{Amount: "49.50"},
	}
	if got := TotalIncome(entries); got != 150.00 {
		t.Fatalf("TotalIncome = %v, want 150.00", got)
	}
}
