package annotation

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/dd0wney/cluso-ontograph/pkg/graph"
)

// maxValuerDepth bounds driver.Valuer chains.
const maxValuerDepth = 4

// Normalize converts an externally sourced value into one of the scalar
// kinds a graph attribute can hold: int64, float64, bool, string or nil.
//
// NaN is treated as a missing value and becomes nil. Timestamps are
// rendered as RFC3339 strings and byte slices as strings. Unsigned values
// above math.MaxInt64 and unsupported kinds are invariant violations.
func Normalize(v any) (any, error) {
	return normalize(v, 0)
}

func normalize(v any, depth int) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		return normalize(rv.Elem().Interface(), depth)
	}

	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return x, nil
	case int64:
		return x, nil
	case float64:
		return finite(x), nil
	case float32:
		return finite(float64(x)), nil
	case []byte:
		if x == nil {
			return nil, nil
		}
		return string(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, unsupported("malformed number %q", x.String())
		}
		return finite(f), nil
	case time.Time:
		return x.Format(time.RFC3339), nil
	case uuid.UUID:
		return x.String(), nil
	case [16]byte:
		// pgx decodes uuid columns to [16]byte
		return uuid.UUID(x).String(), nil
	case pgtype.Numeric:
		return normalizeNumeric(x)
	case driver.Valuer:
		if depth >= maxValuerDepth {
			return nil, unsupported("driver.Valuer nested deeper than %d", maxValuerDepth)
		}
		dv, err := x.Value()
		if err != nil {
			return nil, fmt.Errorf("annotation value %T: %w", v, err)
		}
		return normalize(dv, depth+1)
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, unsupported("unsigned value %d overflows int64", u)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return finite(rv.Float()), nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	}

	return nil, unsupported("unsupported value type %T", v)
}

func normalizeNumeric(n pgtype.Numeric) (any, error) {
	if !n.Valid || n.NaN {
		return nil, nil
	}
	if n.InfinityModifier == pgtype.Finite && n.Exp >= 0 && n.Int != nil {
		i, err := n.Int64Value()
		if err == nil && i.Valid {
			return i.Int64, nil
		}
	}
	f, err := n.Float64Value()
	if err != nil {
		return nil, fmt.Errorf("annotation numeric: %w", err)
	}
	if !f.Valid {
		return nil, nil
	}
	return finite(f.Float64), nil
}

// finite maps NaN to nil. Infinities are kept.
func finite(f float64) any {
	if math.IsNaN(f) {
		return nil
	}
	return f
}

func unsupported(format string, args ...any) error {
	return graph.NewError("Normalize").
		Context(format, args...).
		Cause(graph.ErrInvariantViolation).
		Err()
}
