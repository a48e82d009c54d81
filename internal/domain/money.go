package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var amountCleaner = strings.NewReplacer(",", "", "₹", "", "Rs.", "", "Rs", "", "INR", "", " ", "")

// ParseAmount converts a rupee amount such as "1,250.50" or "Rs. 300" to paise.
func ParseAmount(s string) (int64, error) {
	clean := amountCleaner.Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, fmt.Errorf("empty amount")
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return int64(math.Round(f * 100)), nil
}

// FormatAmount renders paise as rupees with two decimals.
func FormatAmount(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%s%d.%02d", sign, paise/100, paise%100)
}
