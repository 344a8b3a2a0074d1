package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// invoicePrefix returns the number prefix shared by all invoices of a
// calendar year, e.g. "INV-2026-".
func invoicePrefix(year int) string {
	return fmt.Sprintf("INV-%d-", year)
}

// formatInvoiceNumber constructs the invoice number from its parts.
func formatInvoiceNumber(year, sequence int) string {
	return fmt.Sprintf("%s%04d", invoicePrefix(year), sequence)
}

// NextInvoiceNumber returns the next number in now's year given the numbers
// already issued. Format: INV-{year}-{sequence}, the sequence 4-digit zero
// padded and restarting each January. Numbers from other years or in another
// format are ignored; gaps are not reused.
func NextInvoiceNumber(existing []string, now time.Time) string {
	prefix := invoicePrefix(now.Year())
	highest := 0
	for _, n := range existing {
		rest, ok := strings.CutPrefix(n, prefix)
		if !ok {
			continue
		}
		seq, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		highest = max(highest, seq)
	}
	return formatInvoiceNumber(now.Year(), highest+1)
}
