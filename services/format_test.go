package services

import "testing"

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		input  float64
		expect string
	}{
		{0, "$0.00"},
		{5, "$5.00"},
		{999.5, "$999.50"},
		{1000, "$1,000.00"},
		{1234567.891, "$1,234,567.89"},
		{-50, "-$50.00"},
		{-0.001, "$0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			if got := FormatCurrency(tt.input); got != tt.expect {
				t.Errorf("FormatCurrency(%v) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatDisplayTotal(t *testing.T) {
	if got := FormatDisplayTotal(-120.5); got != "$0.00" {
		t.Errorf("FormatDisplayTotal(-120.5) = %q, want $0.00", got)
	}
	if got := FormatDisplayTotal(895); got != "$895.00" {
		t.Errorf("FormatDisplayTotal(895) = %q, want $895.00", got)
	}
}

func TestFormatPercent(t *testing.T) {
	tests := map[float64]string{10: "10%", 7.5: "7.5%", 0: "0%"}
	for in, want := range tests {
		if got := FormatPercent(in); got != want {
			t.Errorf("FormatPercent(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := map[float64]string{1000: "1000.00", 0.5: "0.50", -12.5: "-12.50", 1234567.8: "1234567.80"}
	for in, want := range tests {
		if got := FormatAmount(in); got != want {
			t.Errorf("FormatAmount(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := map[float64]string{10: "10", 2.5: "2.50", 0: "0"}
	for in, want := range tests {
		if got := FormatQuantity(in); got != want {
			t.Errorf("FormatQuantity(%v) = %q, want %q", in, got, want)
		}
	}
}
