package xcodeproj

import "strconv"

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func ensure(err error) {
	if err != nil {
		panic(err)
	}
}

func nonNil[T any](v *T) *T {
	if v == nil {
		panic("nil")
	}
	return v
}

// copyValue deep-copies the plist-shaped values we deal in: dictionaries,
// arrays and scalars. Scalars are returned as is.
func copyValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, item := range v {
			m[k] = copyValue(item)
		}
		return m
	case []any:
		s := make([]any, len(v))
		for i, item := range v {
			s[i] = copyValue(item)
		}
		return s
	default:
		return v
	}
}

// versionInt extracts an integer from the version encodings that occur in
// the wild: string-encoded (OpenStep documents type everything as strings)
// or natively typed (hand-written XML documents).
func versionInt(v any) (int, bool) {
	switch v := v.(type) {
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	default:
		return 0, false
	}
}
