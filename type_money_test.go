package tourbook

import (
	"encoding/json"
	"math"
	"testing"
)

func TestMoney_Arithmetic(t *testing.T) {
	a := M(100, "TWD")
	b := M(50, "TWD")

	if got := a.Add(b); !got.Equal(M(150, "TWD")) {
		t.Errorf("Add = %s, want 150 TWD", got)
	}
	if got := a.Sub(b); !got.Equal(M(50, "TWD")) {
		t.Errorf("Sub = %s, want 50 TWD", got)
	}

	// The empty currency is weak: it takes the other operand's currency.
	zero := M(0, "")
	if got := zero.Add(a); got.Currency() != "TWD" {
		t.Errorf("weak currency Add = %q, want TWD", got.Currency())
	}
}

func TestMoney_SignedString(t *testing.T) {
	testCases := []struct {
		name string
		in   Money
		want string
	}{
		{name: "zero", in: M(0, "TWD"), want: "-"},
		{name: "positive", in: M(600, "TWD"), want: "+NT$600.00"},
		{name: "negative", in: M(-4725, "TWD"), want: "-NT$4,725.00"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.SignedString(); got != tc.want {
				t.Errorf("SignedString(%s) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestMoney_MarshalJSON(t *testing.T) {
	testCases := []struct {
		name string
		in   Money
		want string
	}{
		// Canonical field order: currency before amount.
		{name: "whole", in: M(3200, "JPY"), want: `{"currency":"JPY","amount":3200}`},
		// The exact value is stored, even below the currency's minor unit.
		{name: "fractional", in: M(500.5, "JPY"), want: `{"currency":"JPY","amount":500.5}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tc.want {
				t.Errorf("MarshalJSON = %s, want %s", data, tc.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	m, err := ParseAmount(3200.5, "JPY")
	if err != nil {
		t.Fatalf("ParseAmount(3200.5) returned %v", err)
	}
	if !m.Equal(M(3200.5, "JPY")) {
		t.Errorf("ParseAmount(3200.5) = %s", m)
	}

	for name, in := range map[string]float64{
		"NaN":  math.NaN(),
		"+Inf": math.Inf(1),
		"-Inf": math.Inf(-1),
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseAmount(in, "TWD"); err == nil {
				t.Errorf("ParseAmount(%v) accepted a non-finite amount", in)
			}
		})
	}
}
