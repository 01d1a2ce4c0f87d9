package codable

import (
	"time"
)

// encodeTime renders a time.Time using the installed date strategy.
func encodeTime(t time.Time, path string, o EncodeOptions) (Value, error) {
	switch o.Dates {
	case DateEpochSeconds:
		return Int(t.Unix()), nil
	case DateEpochMillis:
		return Int(t.UnixMilli()), nil
	case DateCustomLayout:
		if o.DateLayout == "" {
			return Value{}, Issues{issueDataCorrupted(path, "DateCustomLayout requires DateLayout", nil)}
		}
		return String(t.Format(o.DateLayout)), nil
	default: // DateDefault, DateISO8601
		return String(formatISO8601(t)), nil
	}
}

// decodeTime reads a time.Time using the installed date strategy. With no
// strategy installed (DateDefault) the probe order is fixed and documented:
// ISO-8601 string first, then epoch-seconds number, then data_corrupted.
func decodeTime(v Value, path string, o DecodeOptions) (time.Time, error) {
	if v.IsNull() {
		return time.Time{}, Issues{issueValueNotFound(path, KindString)}
	}
	switch o.Dates {
	case DateISO8601:
		s, err := v.asString(path)
		if err != nil {
			return time.Time{}, Issues{issueDataCorrupted(path, "expected ISO-8601 string, found "+v.Kind().String(), nil)}
		}
		t, perr := parseISO8601(s)
		if perr != nil {
			return time.Time{}, Issues{issueDataCorrupted(path, "invalid ISO-8601 time", perr)}
		}
		return t, nil
	case DateEpochSeconds:
		n, err := v.asNumber(path)
		if err != nil {
			return time.Time{}, Issues{issueDataCorrupted(path, "expected epoch-seconds number, found "+v.Kind().String(), nil)}
		}
		if sec, perr := n.Int64(); perr == nil {
			return time.Unix(sec, 0).UTC(), nil
		}
		f, perr := n.Float64()
		if perr != nil {
			return time.Time{}, Issues{issueDataCorrupted(path, "invalid epoch seconds", perr)}
		}
		return epochToTime(f), nil
	case DateEpochMillis:
		n, err := v.asNumber(path)
		if err != nil {
			return time.Time{}, Issues{issueDataCorrupted(path, "expected epoch-milliseconds number, found "+v.Kind().String(), nil)}
		}
		if ms, perr := n.Int64(); perr == nil {
			return time.UnixMilli(ms).UTC(), nil
		}
		f, perr := n.Float64()
		if perr != nil {
			return time.Time{}, Issues{issueDataCorrupted(path, "invalid epoch milliseconds", perr)}
		}
		return epochToTime(f / 1000), nil
	case DateCustomLayout:
		if o.DateLayout == "" {
			return time.Time{}, Issues{issueDataCorrupted(path, "DateCustomLayout requires DateLayout", nil)}
		}
		s, err := v.asString(path)
		if err != nil {
			return time.Time{}, Issues{issueDataCorrupted(path, "expected formatted date string, found "+v.Kind().String(), nil)}
		}
		t, perr := time.Parse(o.DateLayout, s)
		if perr != nil {
			return time.Time{}, Issues{issueDataCorrupted(path, "date does not match layout", perr)}
		}
		return t, nil
	default: // DateDefault probe
		if s, err := v.asString(path); err == nil {
			t, perr := parseISO8601(s)
			if perr != nil {
				return time.Time{}, Issues{issueDataCorrupted(path, "invalid ISO-8601 time", perr)}
			}
			return t, nil
		}
		if n, err := v.asNumber(path); err == nil {
			if sec, perr := n.Int64(); perr == nil {
				return time.Unix(sec, 0).UTC(), nil
			}
			f, perr := n.Float64()
			if perr != nil {
				return time.Time{}, Issues{issueDataCorrupted(path, "invalid epoch seconds", perr)}
			}
			return epochToTime(f), nil
		}
		return time.Time{}, Issues{issueDataCorrupted(path, "unrecognized date representation ("+v.Kind().String()+")", nil)}
	}
}

func parseISO8601(s string) (time.Time, error) {
	// Accept RFC3339Nano (fractional seconds optional).
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatISO8601(t time.Time) string {
	// Normalize to UTC; RFC3339Nano trims trailing zeros.
	return t.UTC().Format(time.RFC3339Nano)
}

func epochToTime(sec float64) time.Time {
	s := int64(sec)
	ns := int64((sec - float64(s)) * float64(time.Second))
	return time.Unix(s, ns).UTC()
}
