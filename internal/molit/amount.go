package molit

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts a registry amount string into a number. Registry
// amounts arrive comma-grouped ("5,000") and are sometimes blank. The
// function is total: blank or malformed input yields 0, never an error.
// Downstream classification depends on "unparseable means absent".
func ParseAmount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
