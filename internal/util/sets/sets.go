package sets

// Set is a simple generic hash set for comparable keys.
// Usage: s := sets.New[string]("a","b"); s.Add("c"); if s.Has("b") {...}
type Set[T comparable] map[T]struct{}

// New creates a set pre-populated with the provided values.
func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts value into the set.
func (s Set[T]) Add(v T) { s[v] = struct{}{} }

// Has returns true if v is present.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Ordered is a set that remembers insertion order.
//
// The zero value is ready to use. Inserting a value that is already present
// is a no-op and does not change its position.
type Ordered[T comparable] struct {
	items []T
	index map[T]int
}

// NewOrdered creates an ordered set from vals, dropping later duplicates.
func NewOrdered[T comparable](vals ...T) *Ordered[T] {
	o := &Ordered[T]{}
	o.Extend(vals...)
	return o
}

// Insert adds v at the end unless it is already present.
// It reports whether v was added.
func (o *Ordered[T]) Insert(v T) bool {
	if o.index == nil {
		o.index = make(map[T]int)
	}
	if _, ok := o.index[v]; ok {
		return false
	}
	o.index[v] = len(o.items)
	o.items = append(o.items, v)
	return true
}

// Extend inserts every value in order.
func (o *Ordered[T]) Extend(vals ...T) {
	for _, v := range vals {
		o.Insert(v)
	}
}

// MoveToFront relocates v to position 0. It is a no-op if v is absent.
func (o *Ordered[T]) MoveToFront(v T) {
	i, ok := o.index[v]
	if !ok || i == 0 {
		return
	}
	copy(o.items[1:i+1], o.items[:i])
	o.items[0] = v
	for j := 0; j <= i; j++ {
		o.index[o.items[j]] = j
	}
}

// Has returns true if v is present.
func (o *Ordered[T]) Has(v T) bool {
	if o == nil {
		return false
	}
	_, ok := o.index[v]
	return ok
}

// Len returns the number of elements.
func (o *Ordered[T]) Len() int {
	if o == nil {
		return 0
	}
	return len(o.items)
}

// Values returns a copy of the elements in order.
func (o *Ordered[T]) Values() []T {
	if o == nil || len(o.items) == 0 {
		return nil
	}
	out := make([]T, len(o.items))
	copy(out, o.items)
	return out
}

// Clone returns an independent copy.
func (o *Ordered[T]) Clone() *Ordered[T] {
	return NewOrdered(o.Values()...)
}
