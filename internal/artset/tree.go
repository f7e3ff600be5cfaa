package artset

// Property-list documents decode into a dynamic tree of strings, integers,
// reals, booleans, dictionaries, and arrays. The helpers below pattern-match
// that tree so the parser never touches untyped values directly.

func asDict(v any) (map[string]any, bool) {
	d, ok := v.(map[string]any)
	return d, ok
}

func asArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asInt accepts the integer shapes plist decoding produces. Reals are
// accepted when integral, matching documents written by tools that store
// whole numbers as floats.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case uint64:
		return int(n), true
	case int64:
		return int(n), true
	case int:
		return n, true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	case float32:
		if n == float32(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// dictValue returns the first present key. Keys are case-sensitive; callers
// pass the casings they accept.
func dictValue(d map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := d[key]; ok {
			return v, true
		}
	}
	return nil, false
}

func dictString(d map[string]any, keys ...string) (string, bool) {
	if v, ok := dictValue(d, keys...); ok {
		return asString(v)
	}
	return "", false
}

func dictInt(d map[string]any, keys ...string) (int, bool) {
	if v, ok := dictValue(d, keys...); ok {
		return asInt(v)
	}
	return 0, false
}

func dictArray(d map[string]any, keys ...string) ([]any, bool) {
	if v, ok := dictValue(d, keys...); ok {
		return asArray(v)
	}
	return nil, false
}

func dictDict(d map[string]any, keys ...string) (map[string]any, bool) {
	if v, ok := dictValue(d, keys...); ok {
		return asDict(v)
	}
	return nil, false
}
