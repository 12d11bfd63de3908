package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// ToFloat reads a settings value as a decimal number. Strings may carry
// surrounding whitespace.
func ToFloat(v any) (float64, error) {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("unable to cast %#v to a finite number", v)
	}
	return f, nil
}

// ToInt reads a settings value as a decimal integer, dropping any fraction.
// Leading zeros do not switch the base: "050" is 50.
func ToInt(v any) (int, error) {
	f, err := ToFloat(v)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
