package notation

import (
	"fmt"
	"strconv"
)

// ResolveDuration turns a duration suffix into a length in beats.
// An empty suffix means one unit. Bare digits multiply the unit,
// /N divides it, *N multiplies it, and :X is an explicit beat count
// that ignores the unit entirely.
func ResolveDuration(suffix string, unit float64) (float64, error) {
	if suffix == "" {
		return unit, nil
	}
	switch suffix[0] {
	case ':':
		v, err := strconv.ParseFloat(suffix[1:], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid explicit duration '%s'", suffix)
		}
		if v <= 0 {
			return 0, fmt.Errorf("explicit duration '%s' must be positive", suffix)
		}
		return v, nil
	case '/':
		v, err := strconv.ParseFloat(suffix[1:], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration divisor '%s'", suffix)
		}
		if v == 0 {
			return 0, fmt.Errorf("divide by zero in duration '%s'", suffix)
		}
		return positive(unit/v, suffix)
	case '*':
		v, err := strconv.ParseFloat(suffix[1:], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration multiplier '%s'", suffix)
		}
		return positive(unit*v, suffix)
	default:
		v, err := strconv.ParseFloat(suffix, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration modifier '%s'", suffix)
		}
		return positive(unit*v, suffix)
	}
}

func positive(v float64, suffix string) (float64, error) {
	if v <= 0 {
		return 0, fmt.Errorf("duration '%s' must be positive", suffix)
	}
	return v, nil
}
