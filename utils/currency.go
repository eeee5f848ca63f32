package utils

import (
	"fmt"
	"strings"
)

// FormatRupiah memformat nominal rupiah utuh dengan pemisah ribuan.
// Contoh: 50000 -> "Rp 50.000"
func FormatRupiah(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)

	var parts []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		parts = append([]string{digits[start:i]}, parts...)
	}

	formatted := "Rp " + strings.Join(parts, ".")
	if negative {
		formatted = "-" + formatted
	}
	return formatted
}
