package services

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatCurrency formats an amount as US dollars with thousands grouping and
// exactly 2 decimal places, e.g. $1,234.56 or -$50.00.
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	result := "$" + humanize.FormatFloat("#,###.##", amount)
	if negative && result != "$0.00" {
		result = "-" + result
	}
	return result
}

// FormatDisplayTotal formats an amount due for display. A credit balance
// (negative amount) shows as $0.00; the stored value keeps its sign.
func FormatDisplayTotal(amount float64) string {
	if amount < 0 {
		amount = 0
	}
	return FormatCurrency(amount)
}

// FormatPercent formats a percentage without trailing zeros: 10%, 7.5%.
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

// FormatAmount formats a number with 2 decimals and no grouping, the form
// spreadsheets import without locale trouble.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// FormatQuantity returns whole numbers without decimals and fractional values
// with 2 decimal places.
func FormatQuantity(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
