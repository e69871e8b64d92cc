package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{"123,45", "123.45", true},
		{"-40.00", "-40", true},
		{" 2.50 ", "2.5", true},
		{"0", "0", true},
		{"", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"12 34", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q: expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q: expected error", tc.in)
			}
		}
	}
}

func TestQuantizeHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"10.1234", "10.12"},
		{"10.125", "10.13"},
		{"-10.125", "-10.13"},
		{"10.124", "10.12"},
		{"10.1", "10.1"},
		{"0", "0"},
	}
	for _, tc := range cases {
		got := MustMoney(tc.in).Quantize(2)
		if got.String() != tc.out {
			t.Fatalf("quantize(%s): expected %s, got %s", tc.in, tc.out, got)
		}
	}
}

func TestQuantizeIdempotent(t *testing.T) {
	for _, s := range []string{"10.1234", "0.005", "-3.999", "100"} {
		once := MustMoney(s).Quantize(2)
		twice := once.Quantize(2)
		if once.Cmp(twice) != 0 || once.String() != twice.String() {
			t.Fatalf("quantize(%s) not idempotent: %s vs %s", s, once, twice)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := MustMoney("100.00")
	b := MustMoney("-40.00")
	if got := a.Add(b).String(); got != "60" {
		t.Fatalf("100.00 + -40.00 = %s", got)
	}
	if got := a.Sub(b).String(); got != "140" {
		t.Fatalf("100.00 - -40.00 = %s", got)
	}
	if got := b.Neg().String(); got != "40" {
		t.Fatalf("neg(-40.00) = %s", got)
	}
	if b.Sign() != -1 || a.Sign() != 1 {
		t.Fatalf("unexpected signs: %d %d", a.Sign(), b.Sign())
	}
	// No binary drift: 0.1 + 0.2 is exactly 0.3.
	if got := MustMoney("0.1").Add(MustMoney("0.2")); got.Cmp(MustMoney("0.3")) != 0 {
		t.Fatalf("0.1 + 0.2 = %s", got)
	}
}

func TestMoneyFromCents(t *testing.T) {
	if got := MoneyFromCents(1234).StringFixed(); got != "12.34" {
		t.Fatalf("MoneyFromCents(1234) = %s", got)
	}
	if got := MoneyFromCents(-5).StringFixed(); got != "-0.05" {
		t.Fatalf("MoneyFromCents(-5) = %s", got)
	}
}
