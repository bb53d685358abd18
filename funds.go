package pitchprofile

import (
	"fmt"
	"strconv"
	"strings"
)

// percentTolerance absorbs rounding in hand-written allocations like 33.33%.
const percentTolerance = 0.01

// ParsePercent parses an allocation such as "40%", "12.5 %" or "40".
func ParsePercent(s string) (float64, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimSpace(strings.TrimSuffix(v, "%"))
	if v == "" {
		return 0, fmt.Errorf("empty percentage")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q", s)
	}
	if f < 0 || f > 100 {
		return 0, fmt.Errorf("percentage out of range: %q", s)
	}
	return f, nil
}

// FundsTotal sums the percentages of a fund allocation.
func FundsTotal(allocation OrderedMap) (float64, error) {
	var total float64
	for _, e := range allocation {
		p, err := ParsePercent(e.Value)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", e.Key, err)
		}
		total += p
	}
	return total, nil
}

func formatPercent(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
