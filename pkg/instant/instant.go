// Package instant normalizes the heterogeneous timestamp encodings returned
// by the document store into a single comparable and displayable form.
package instant

import (
	"encoding/json"
	"time"
)

// Sentinel display values. Display never fails; absence and garbage each map
// to a fixed string so a bad date can never abort a list render.
const (
	UnknownDate = "Unknown date"
	InvalidDate = "Invalid date"
)

// DisplayLayout is the format used for human-readable timestamps.
const DisplayLayout = "Jan 2, 2006 3:04 PM"

// secondsThreshold separates epoch seconds from epoch milliseconds. Numeric
// values below it are treated as seconds and scaled up.
const secondsThreshold = 1_000_000_000_000

// Raw is a timestamp as it comes back from the document store: a time.Time,
// an ISO-8601 string, an epoch number in seconds or milliseconds, a
// {seconds, nanoseconds} pair (decoded or typed), or nil.
type Raw = any

// TimeConvertible is implemented by values that can convert themselves to a
// calendar time, such as store-native timestamp objects.
type TimeConvertible interface {
	Time() time.Time
}

// Timestamp is the structured second/nanosecond pair emitted by the document
// store. It survives a JSON round trip as {"seconds": ..., "nanoseconds": ...}.
type Timestamp struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int64 `json:"nanoseconds"`
}

// Time converts the pair to a calendar time.
func (t Timestamp) Time() time.Time {
	return time.Unix(t.Seconds, t.Nanoseconds).UTC()
}

// UnixMilli collapses any raw timestamp encoding into epoch milliseconds for
// comparison. It is total: nil, unrecognized, and unparseable inputs all
// yield 0, and the result is never negative.
func UnixMilli(raw Raw) int64 {
	t, ok := resolve(raw)
	if !ok {
		return 0
	}

	millis := t.UnixMilli()
	if millis < 0 {
		return 0
	}

	return millis
}

// Display renders a raw timestamp for humans. Absent input yields
// UnknownDate, unparseable input yields InvalidDate. It never fails.
func Display(raw Raw) string {
	if raw == nil {
		return UnknownDate
	}

	t, ok := resolve(raw)
	if !ok {
		return InvalidDate
	}

	return t.Local().Format(DisplayLayout)
}

// resolve maps every supported encoding to a time.Time.
func resolve(raw Raw) (time.Time, bool) {
	switch v := raw.(type) {
	case nil:
		return time.Time{}, false
	case TimeConvertible:
		return v.Time(), true
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}

		return *v, true
	case string:
		return parseString(v)
	case float64:
		return fromEpoch(int64(v)), true
	case int64:
		return fromEpoch(v), true
	case int:
		return fromEpoch(int64(v)), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}

		return fromEpoch(int64(f)), true
	case map[string]any:
		return fromPairMap(v)
	default:
		return time.Time{}, false
	}
}

func parseString(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// fromEpoch interprets a numeric epoch value, scaling seconds to
// milliseconds when the magnitude is below the threshold.
func fromEpoch(n int64) time.Time {
	if n < secondsThreshold {
		n *= 1000
	}

	return time.UnixMilli(n).UTC()
}

// fromPairMap handles a {seconds, nanoseconds} pair that lost its type on the
// way through JSON decoding.
func fromPairMap(m map[string]any) (time.Time, bool) {
	rawSeconds, ok := m["seconds"]
	if !ok {
		return time.Time{}, false
	}

	seconds, ok := toInt64(rawSeconds)
	if !ok {
		return time.Time{}, false
	}

	var nanos int64
	if rawNanos, ok := m["nanoseconds"]; ok {
		nanos, _ = toInt64(rawNanos)
	}

	return time.Unix(seconds, nanos).UTC(), true
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}

		return int64(f), true
	default:
		return 0, false
	}
}
