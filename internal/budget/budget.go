// Package budget derives per-run wall-clock limits for the solver.
package budget

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"thop-experiments/internal/domain"
)

// SizeToken returns the integer formed by all digit characters of the family
// name, e.g. 51 for "eil51" and 1000 for "dsj1000".
func SizeToken(family string) (int, error) {
	var b strings.Builder
	for _, r := range family {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrNoSizeToken, family)
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", domain.ErrNoSizeToken, family, err)
	}
	return n, nil
}

// TimeBudget returns factor * ceil((size-2) * itemsPerCity / 10) seconds.
func TimeBudget(family string, itemsPerCity int, factor float64) (float64, error) {
	size, err := SizeToken(family)
	if err != nil {
		return 0, err
	}
	base := math.Ceil(float64(size-2) * float64(itemsPerCity) / 10.0)
	return factor * base, nil
}

// ParseFactor accepts "2", "2x", "0.5x".
func ParseFactor(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "x"), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: runtime factor %q: %v", domain.ErrInvalidConfig, s, err)
	}
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: runtime factor must be > 0 (got %q)", domain.ErrInvalidConfig, s)
	}
	return v, nil
}
