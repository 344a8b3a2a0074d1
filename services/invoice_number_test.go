package services

import (
	"testing"
	"time"
)

func TestNextInvoiceNumber(t *testing.T) {
	march := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		existing []string
		now      time.Time
		want     string
	}{
		{"first of year", nil, march, "INV-2026-0001"},
		{"after highest", []string{"INV-2026-0001", "INV-2026-0007", "INV-2026-0003"}, march, "INV-2026-0008"},
		{"other years ignored", []string{"INV-2025-0042"}, march, "INV-2026-0001"},
		{"foreign formats ignored", []string{"INV-2026-A1", "PO-2026-0009", ""}, march, "INV-2026-0001"},
		{"year rollover", []string{"INV-2026-0120"}, time.Date(2027, time.January, 2, 0, 0, 0, 0, time.UTC), "INV-2027-0001"},
		{"beyond four digits", []string{"INV-2026-9999"}, march, "INV-2026-10000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextInvoiceNumber(tt.existing, tt.now); got != tt.want {
				t.Errorf("NextInvoiceNumber() = %q, want %q", got, tt.want)
			}
		})
	}
}
