package column

// Unique is an append-only, deduplicated sequence of values.  Each value
// is assigned a code equal to its position, codes are dense and zero
// based, and a code once assigned keeps its value for the life of the
// store.
//
// Values are compared with == unless the store has a key function, in
// which case two values are the same when their keys are equal.
type Unique[T comparable] struct {
	values []T
	codes  map[T]uint64
	key    func(T) any
	keyed  map[any]uint64
}

func NewUnique[T comparable]() *Unique[T] {
	return &Unique[T]{
		codes: make(map[T]uint64),
	}
}

// NewUniqueFunc returns a store that compares values by key.  A nil key
// is the same as NewUnique.
func NewUniqueFunc[T comparable](key func(T) any) *Unique[T] {
	if key == nil {
		return NewUnique[T]()
	}
	return &Unique[T]{
		key:   key,
		keyed: make(map[any]uint64),
	}
}

func (u *Unique[T]) Len() int {
	return len(u.values)
}

// Insert returns the code of v, appending v to the store if it is not
// already present.  The second return value is true if v was appended.
func (u *Unique[T]) Insert(v T) (uint64, bool) {
	if code, ok := u.Lookup(v); ok {
		return code, false
	}
	code := uint64(len(u.values))
	u.values = append(u.values, v)
	if u.key != nil {
		u.keyed[u.key(v)] = code
	} else {
		u.codes[v] = code
	}
	return code, true
}

// InsertRange inserts each of vals in order and returns their codes.
// When the store is empty and vals has no duplicates, the codes are
// 0..len(vals)-1.
func (u *Unique[T]) InsertRange(vals []T) []uint64 {
	codes := make([]uint64, 0, len(vals))
	for _, v := range vals {
		code, _ := u.Insert(v)
		codes = append(codes, code)
	}
	return codes
}

func (u *Unique[T]) Lookup(v T) (uint64, bool) {
	if u.key != nil {
		code, ok := u.keyed[u.key(v)]
		return code, ok
	}
	code, ok := u.codes[v]
	return code, ok
}

// Value returns the value assigned to code, which must be less than
// Len.
func (u *Unique[T]) Value(code uint64) T {
	return u.values[code]
}

// Values returns the values in code order.  The slice must not be
// modified.
func (u *Unique[T]) Values() []T {
	return u.values
}

// PopBack removes the n most recently appended values.  It is used only
// to undo insertions that could not be kept.
func (u *Unique[T]) PopBack(n int) {
	if n > len(u.values) {
		n = len(u.values)
	}
	end := len(u.values) - n
	for _, v := range u.values[end:] {
		if u.key != nil {
			delete(u.keyed, u.key(v))
		} else {
			delete(u.codes, v)
		}
	}
	var zero T
	for k := end; k < len(u.values); k++ {
		u.values[k] = zero
	}
	u.values = u.values[:end]
}
