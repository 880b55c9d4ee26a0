package cards

import (
	"fmt"
	"strings"
)

// FormatAmount formats an amount with thousand separators
func FormatAmount(amount int64) string {
	if amount < 0 {
		return "-" + FormatAmount(-amount)
	}

	str := fmt.Sprintf("%d", amount)

	// Add commas for thousands
	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatPrice renders a price in Kenyan shillings
func FormatPrice(price int64) string {
	return "KES " + FormatAmount(price)
}
