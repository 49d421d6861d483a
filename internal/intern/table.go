package intern

// Table is an append-only list of unique values. The index of a value is its
// position in the list and never changes once issued.
type Table[K comparable, V any] struct {
	values []V
	index  map[K]int
	keyOf  func(V) K
}

// New creates a table for a comparable value type.
func New[V comparable]() *Table[V, V] {
	return NewKeyed(func(v V) V { return v })
}

// NewKeyed creates a table whose equality is decided by keyOf.
func NewKeyed[K comparable, V any](keyOf func(V) K) *Table[K, V] {
	return &Table[K, V]{
		index: make(map[K]int),
		keyOf: keyOf,
	}
}

// Intern returns the index of v, appending it on first sight.
func (t *Table[K, V]) Intern(v V) int {
	k := t.keyOf(v)
	if i, ok := t.index[k]; ok {
		return i
	}
	i := len(t.values)
	t.values = append(t.values, v)
	t.index[k] = i
	return i
}

func (t *Table[K, V]) Len() int {
	return len(t.values)
}

// Values returns a copy of the backing sequence. The result is never nil.
func (t *Table[K, V]) Values() []V {
	out := make([]V, len(t.values))
	copy(out, t.values)
	return out
}

// Clone returns an independent table with the same entries.
func (t *Table[K, V]) Clone() *Table[K, V] {
	c := NewKeyed(t.keyOf)
	for _, v := range t.values {
		c.Intern(v)
	}
	return c
}
