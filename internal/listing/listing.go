package listing

// Raw is a single job listing record as decoded from the search API's JSON
// payload. Every field is optional on the provider side, so all access goes
// through the default-chasing helpers below; callers must never assume a key
// exists or has a particular type.
type Raw map[string]any

// Str returns the string stored at key, or def when the key is absent, null,
// or not a string.
func (r Raw) Str(key, def string) string {
	if r == nil {
		return def
	}
	if s, ok := r[key].(string); ok {
		return s
	}
	return def
}

// Nested returns the string stored at parent.key, chasing defaults at both
// levels. A missing parent object and a missing child key degrade the same
// way.
func (r Raw) Nested(parent, key, def string) string {
	if r == nil {
		return def
	}
	m, ok := r[parent].(map[string]any)
	if !ok {
		return def
	}
	if s, ok := m[key].(string); ok {
		return s
	}
	return def
}

// Num returns the number stored at key. ok is false when the key is absent,
// null, or not numeric. JSON decoding produces float64 for every number;
// int and int64 are accepted for records built in tests or from YAML.
func (r Raw) Num(key string) (float64, bool) {
	if r == nil {
		return 0, false
	}
	switch n := r[key].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
