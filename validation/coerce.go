package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/liamcoop/churn/catalog"
)

// maxExactInt is the largest integer a float64 holds exactly
const maxExactInt = 1 << 53

// coerce turns one raw value into its typed form. Sources differ by channel:
// JSON bodies give json.Number or float64, HTML forms give strings, Go callers
// and the terminal form give ints, floats and bools.
func coerce(f catalog.FieldSpec, raw any) (any, *Violation) {
	if raw == nil {
		v := fieldViolation(f.Name, "field required")
		return nil, &v
	}

	switch f.Kind {
	case catalog.KindChoice:
		return coerceChoice(f, raw)
	case catalog.KindBoolean, catalog.KindRange:
		return coerceInt(f, raw)
	default:
		return coerceFloat(f, raw)
	}
}

func coerceChoice(f catalog.FieldSpec, raw any) (any, *Violation) {
	s, ok := raw.(string)
	if !ok {
		v := fieldViolation(f.Name, "expected a string, got %s", describe(raw))
		return nil, &v
	}
	if !f.Allows(s) {
		v := fieldViolation(f.Name, "value %q is not %s", s, f.Constraint())
		return nil, &v
	}
	return s, nil
}

func coerceInt(f catalog.FieldSpec, raw any) (any, *Violation) {
	n, ok := toInt(raw, f.Kind == catalog.KindBoolean)
	if !ok {
		v := fieldViolation(f.Name, "expected an integer, got %s", describe(raw))
		return nil, &v
	}
	if !f.InBounds(float64(n)) {
		v := fieldViolation(f.Name, "value %d is not %s", n, f.Constraint())
		return nil, &v
	}
	return n, nil
}

func coerceFloat(f catalog.FieldSpec, raw any) (any, *Violation) {
	x, ok := toFloat(raw)
	if !ok {
		v := fieldViolation(f.Name, "expected a number, got %s", describe(raw))
		return nil, &v
	}
	if !f.InBounds(x) {
		v := fieldViolation(f.Name, "value %s is not %s", strconv.FormatFloat(x, 'g', -1, 64), f.Constraint())
		return nil, &v
	}
	return x, nil
}

func toInt(raw any, allowBool bool) (int, bool) {
	switch n := raw.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return intFromInt64(n)
	case uint:
		return intFromUint64(uint64(n))
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return intFromUint64(uint64(n))
	case uint64:
		return intFromUint64(n)
	case float32:
		return intFromFloat(float64(n))
	case float64:
		return intFromFloat(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return intFromInt64(i)
		}
		if x, err := n.Float64(); err == nil {
			return intFromFloat(x)
		}
		return 0, false
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return intFromInt64(i)
		}
		if x, err := strconv.ParseFloat(s, 64); err == nil {
			return intFromFloat(x)
		}
		return 0, false
	case bool:
		if !allowBool {
			return 0, false
		}
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func intFromInt64(i int64) (int, bool) {
	if int64(int(i)) != i {
		return 0, false
	}
	return int(i), true
}

func intFromUint64(u uint64) (int, bool) {
	if u > math.MaxInt64 {
		return 0, false
	}
	return intFromInt64(int64(u))
}

func intFromFloat(x float64) (int, bool) {
	if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) || math.Abs(x) > maxExactInt {
		return 0, false
	}
	return int(x), true
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		x, err := n.Float64()
		return x, err == nil
	case string:
		x, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return x, err == nil
	default:
		return 0, false
	}
}

func describe(raw any) string {
	switch v := raw.(type) {
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "unsupported value"
		}
		return string(b)
	}
}
