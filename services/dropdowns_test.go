package services

import (
	"testing"
)

func TestOptionLists(t *testing.T) {
	lists := map[string][]string{
		"UnitOptions":         UnitOptions,
		"ProjectTypeOptions":  ProjectTypeOptions,
		"LeadSourceOptions":   LeadSourceOptions,
		"PaymentTermsOptions": PaymentTermsOptions,
	}
	for name, opts := range lists {
		if len(opts) == 0 {
			t.Errorf("%s should not be empty", name)
		}
		seen := make(map[string]bool)
		for _, opt := range opts {
			if opt == "" {
				t.Errorf("%s contains empty string", name)
			}
			if seen[opt] {
				t.Errorf("%s contains duplicate %q", name, opt)
			}
			seen[opt] = true
		}
	}
}

func TestUnitOptions_CoverSeedUnits(t *testing.T) {
	found := make(map[string]bool)
	for _, u := range UnitOptions {
		found[u] = true
	}
	for _, u := range []string{"LS", "SF", "LF", "HR"} {
		if !found[u] {
			t.Errorf("expected unit %q", u)
		}
	}
}

func TestRetainageOptions_MatchStandardSchedule(t *testing.T) {
	found := make(map[float64]bool)
	for _, r := range RetainageOptions {
		found[r] = true
	}
	for _, pct := range []float64{0, 49.9, 50, 100} {
		if r := StandardRetainagePercent(pct); !found[r] {
			t.Errorf("StandardRetainagePercent(%v) = %v is not an offered option", pct, r)
		}
	}
}
