// Package format turns raw upstream values into display strings. Absent or
// unusable values always render as NotAvailable; nothing here invents a value.
package format

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable is the sentinel shown for any missing metric.
const NotAvailable = "n/a"

var printer = message.NewPrinter(language.AmericanEnglish)

// counter is satisfied by model.Count without importing it.
type counter interface {
	Int64() (int64, bool)
}

type scale struct {
	divisor int64
	suffix  string
}

var scales = []scale{
	{1_000_000_000, "B"},
	{1_000_000, "M"},
	{1_000, "K"},
}

// Count formats a metric. Values under 1,000 are printed as locale-grouped
// integers; larger values are scaled to K, M or B with one decimal place,
// rounding half up on the first dropped digit (1,050 -> "1.1K",
// 1,049 -> "1.0K"). A carry that reaches 1000 of a unit moves to the next
// unit (999,950 -> "1.0M"). B is the largest unit (1,234,500,000,000 ->
// "1234.5B"). Strings must contain only digits and the grouping characters
// ',', '_' or ' '. Floats are truncated toward zero.
func Count(v any) string {
	n, ok := toInt64(v)
	if !ok {
		return NotAvailable
	}
	if n < 1_000 {
		return printer.Sprintf("%d", n)
	}
	for i, s := range scales {
		if n < s.divisor {
			continue
		}
		whole := n / s.divisor
		tenths := (n%s.divisor*10 + s.divisor/2) / s.divisor
		if tenths == 10 {
			whole++
			tenths = 0
		}
		// 999,950 rounds to 1000.0K, which is 1.0M.
		if whole == 1_000 && i > 0 {
			return "1.0" + scales[i-1].suffix
		}
		return fmt.Sprintf("%d.%d%s", whole, tenths, s.suffix)
	}
	return printer.Sprintf("%d", n)
}

func toInt64(v any) (int64, bool) {
	if isNil(v) {
		return 0, false
	}
	switch x := v.(type) {
	case counter:
		return x.Int64()
	case string:
		return parseDigits(x)
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, true
		}
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt64(f)
	case float64:
		return floatToInt64(x)
	case float32:
		return floatToInt64(float64(x))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		return toInt64(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}

func parseDigits(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ',' || r == '_' || r == ' ':
		default:
			return 0, false
		}
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, false
	}
	return int64(math.Trunc(f)), true
}

// DateLayout is the fixed en-US month/day/year rendering.
const DateLayout = "Jan 2, 2006"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Date formats an ISO-8601 timestamp as "Jan 2, 2006" in UTC. Integers
// (and counts) are read as unix seconds. Absent values give NotAvailable; a
// string that does not parse is returned unchanged.
func Date(v any) string {
	if isNil(v) {
		return NotAvailable
	}
	switch x := v.(type) {
	case string:
		return formatDateString(x)
	case *string:
		return formatDateString(*x)
	case time.Time:
		if x.IsZero() {
			return NotAvailable
		}
		return x.UTC().Format(DateLayout)
	case *time.Time:
		return Date(*x)
	}
	if secs, ok := toInt64(v); ok {
		return time.Unix(secs, 0).UTC().Format(DateLayout)
	}
	return NotAvailable
}

func formatDateString(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC().Format(DateLayout)
		}
	}
	return s
}

// DisplayValue renders any value, substituting NotAvailable for nil, nil
// pointers, empty strings and absent counts.
func DisplayValue(v any) string {
	if isNil(v) {
		return NotAvailable
	}
	switch x := v.(type) {
	case string:
		if x == "" {
			return NotAvailable
		}
		return x
	case counter:
		n, ok := x.Int64()
		if !ok {
			return NotAvailable
		}
		return strconv.FormatInt(n, 10)
	case fmt.Stringer:
		return DisplayValue(x.String())
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		return DisplayValue(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
