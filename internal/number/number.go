package number

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToFloat64 converts supported numeric values to float64.
func ToFloat64(value any) (float64, bool) {
	switch current := value.(type) {
	case float32:
		return float64(current), true
	case float64:
		return current, true
	case json.Number:
		parsed, err := current.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		if i, err := ToStrictInt(value); err == nil {
			return float64(i), true
		}
		return 0, false
	}
}

// ToStrictInt converts integer-typed values into int. Floats, numeric
// strings and JSON number literals are rejected.
func ToStrictInt(value any) (int, error) {
	switch current := value.(type) {
	case int:
		return current, nil
	case int8:
		return int(current), nil
	case int16:
		return int(current), nil
	case int32:
		return int(current), nil
	case int64:
		return int(current), nil
	case uint:
		if uint64(current) > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int", current)
		}
		return int(current), nil
	case uint8:
		return int(current), nil
	case uint16:
		return int(current), nil
	case uint32:
		return int(current), nil
	case uint64:
		if current > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int", current)
		}
		return int(current), nil
	default:
		return 0, fmt.Errorf("value %T is not an integer", value)
	}
}

// IsIntegerLiteral reports whether a JSON number literal has neither a
// fraction nor an exponent and fits in an int64.
func IsIntegerLiteral(lit json.Number) bool {
	if strings.ContainsAny(string(lit), ".eE") {
		return false
	}
	_, err := strconv.ParseInt(string(lit), 10, 64)
	return err == nil
}

// FromFloat64 renders f as a JSON number literal.
func FromFloat64(f float64) (json.Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("value %v is not representable in JSON", f)
	}
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return json.Number(b), nil
}
