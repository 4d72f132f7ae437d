package column

import (
	"errors"
	"fmt"
)

var ErrIndexOverflow = errors.New("dictionary code does not fit index width")

type Index interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Indexes is the per-row array of dictionary codes.
type Indexes[I Index] struct {
	codes []I
}

func NewIndexes[I Index]() *Indexes[I] {
	return &Indexes[I]{}
}

func (x *Indexes[I]) Len() int {
	return len(x.codes)
}

func (x *Indexes[I]) Get(row int) uint64 {
	return uint64(x.codes[row])
}

// Append adds code to the end of the array.  It fails with
// ErrIndexOverflow if code is not representable in the index width.
func (x *Indexes[I]) Append(code uint64) error {
	i := I(code)
	if uint64(i) != code {
		var zero I
		return fmt.Errorf("%w: code %d, index type %T", ErrIndexOverflow, code, zero)
	}
	x.codes = append(x.codes, i)
	return nil
}

// Extend appends codes that are already in the index representation.
func (x *Indexes[I]) Extend(codes []I) {
	x.codes = append(x.codes, codes...)
}

// Values returns the codes in row order.  The slice must not be modified.
func (x *Indexes[I]) Values() []I {
	return x.codes
}

// Range returns the codes of rows [off, off+limit) clipped to the array.
// A limit of zero means through the last row.
func (x *Indexes[I]) Range(off, limit int) []I {
	if off >= len(x.codes) {
		return nil
	}
	end := len(x.codes)
	if limit > 0 && off+limit < end {
		end = off + limit
	}
	return x.codes[off:end]
}

// Truncate drops all rows at or beyond n.
func (x *Indexes[I]) Truncate(n int) {
	if n < len(x.codes) {
		x.codes = x.codes[:n]
	}
}
