package i18nsync

// Mapping is an insertion-ordered string map. Setting an existing key replaces
// its value but keeps its position.
type Mapping struct {
	keys   []string
	values map[string]string
}

// NewMapping creates an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]string)}
}

// MappingOf builds a mapping from alternating key/value arguments.
// It panics on an odd number of arguments.
func MappingOf(kv ...string) *Mapping {
	if len(kv)%2 != 0 {
		panic("i18nsync: MappingOf needs key/value pairs")
	}
	m := NewMapping()
	for i := 0; i < len(kv); i += 2 {
		m.Set(kv[i], kv[i+1])
	}
	return m
}

// Set binds key to value.
func (m *Mapping) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value bound to key.
func (m *Mapping) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is bound.
func (m *Mapping) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Delete removes key. It reports whether the key was present.
func (m *Mapping) Delete(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the keys in order. The slice is a copy.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Merge copies every binding of other into m, overwriting existing values.
func (m *Mapping) Merge(other *Mapping) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		m.Set(k, other.values[k])
	}
}

// Clone returns an independent copy.
func (m *Mapping) Clone() *Mapping {
	c := &Mapping{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]string, len(m.values)),
	}
	copy(c.keys, m.keys)
	for k, v := range m.values {
		c.values[k] = v
	}
	return c
}

// Reorder rebuilds m so its keys follow the order of ref. Keys of m that ref
// does not contain keep their relative order after the ordered ones.
func (m *Mapping) Reorder(ref *Mapping) {
	ordered := make([]string, 0, len(m.keys))
	seen := make(map[string]bool, len(m.keys))
	for _, k := range ref.keys {
		if _, ok := m.values[k]; ok {
			ordered = append(ordered, k)
			seen[k] = true
		}
	}
	for _, k := range m.keys {
		if !seen[k] {
			ordered = append(ordered, k)
		}
	}
	m.keys = ordered
}

// Equal reports whether both mappings hold the same bindings in the same order.
func (m *Mapping) Equal(other *Mapping) bool {
	if other == nil || len(m.keys) != len(other.keys) {
		return false
	}
	for i, k := range m.keys {
		if other.keys[i] != k || other.values[k] != m.values[k] {
			return false
		}
	}
	return true
}
