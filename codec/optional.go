package codec

import (
	"fmt"
	"io"
)

// Opt is a possibly null value.  All nulls compare equal, so a
// dictionary of Opt values holds at most one null.
type Opt[T comparable] struct {
	Value T
	Null  bool
}

// Null returns the null Opt of type T.
func Null[T comparable]() Opt[T] {
	var zero T
	return Opt[T]{Value: zero, Null: true}
}

func Some[T comparable](v T) Opt[T] {
	return Opt[T]{Value: v}
}

// Optional wraps a codec so that values may be null.  The bulk form is a
// null map of one byte per value (1 for null) followed by the values in
// the wrapped codec's bulk form, with the zero value in place of each
// null.  The single-value form is a null byte optionally followed by the
// wrapped value.
type Optional[T comparable] struct {
	inner Codec[T]
}

func NewOptional[T comparable](inner Codec[T]) *Optional[T] {
	return &Optional[T]{inner: inner}
}

type optKey struct {
	key  any
	null bool
}

func (o *Optional[T]) KeyFunc() func(Opt[T]) any {
	key := KeyFunc(o.inner)
	if key == nil {
		return nil
	}
	return func(v Opt[T]) any {
		if v.Null {
			return optKey{null: true}
		}
		return optKey{key: key(v.Value)}
	}
}

func (o *Optional[T]) EncodeBulk(w io.Writer, vals []Opt[T]) error {
	if len(vals) == 0 {
		return nil
	}
	nulls := make([]byte, len(vals))
	values := make([]T, len(vals))
	for k, v := range vals {
		if v.Null {
			nulls[k] = 1
			continue
		}
		values[k] = v.Value
	}
	if _, err := w.Write(nulls); err != nil {
		return err
	}
	return o.inner.EncodeBulk(w, values)
}

func (o *Optional[T]) DecodeBulk(r io.Reader, dst []Opt[T], n int) ([]Opt[T], error) {
	if n <= 0 {
		return dst, nil
	}
	nulls, err := readUpTo(r, n)
	if err != nil {
		return dst, err
	}
	cc := len(nulls)
	values, err := o.inner.DecodeBulk(r, make([]T, 0, cc), cc)
	if err != nil {
		return dst, noEOF(err)
	}
	if len(values) != cc {
		return dst, io.ErrUnexpectedEOF
	}
	for k, v := range values {
		if nulls[k] != 0 {
			dst = append(dst, Null[T]())
		} else {
			dst = append(dst, Some(v))
		}
	}
	return dst, nil
}

func (o *Optional[T]) Encode(w io.Writer, v Opt[T]) error {
	if v.Null {
		_, err := w.Write([]byte{1})
		return err
	}
	if _, err := w.Write([]byte{0}); err != nil {
		return err
	}
	return o.inner.Encode(w, v.Value)
}

func (o *Optional[T]) Decode(r io.Reader) (Opt[T], error) {
	b, err := readByte(r)
	if err != nil {
		return Opt[T]{}, err
	}
	switch b {
	case 1:
		return Null[T](), nil
	case 0:
		v, err := o.inner.Decode(r)
		if err != nil {
			return Opt[T]{}, noEOF(err)
		}
		return Some(v), nil
	}
	return Opt[T]{}, fmt.Errorf("bad null flag %d", b)
}

const NullText = "null"

func (o *Optional[T]) Parse(s string) (Opt[T], error) {
	if s == NullText {
		return Null[T](), nil
	}
	v, err := o.inner.Parse(s)
	return Some(v), err
}

func (o *Optional[T]) Format(v Opt[T]) string {
	if v.Null {
		return NullText
	}
	return o.inner.Format(v.Value)
}

func (o *Optional[T]) Coerce(v any) (Opt[T], error) {
	if v == nil {
		return Null[T](), nil
	}
	if opt, ok := v.(Opt[T]); ok {
		if opt.Null {
			return Null[T](), nil
		}
		return opt, nil
	}
	inner, err := o.inner.Coerce(v)
	if err != nil {
		return Opt[T]{}, err
	}
	return Some(inner), nil
}

func (o *Optional[T]) Value(v Opt[T]) any {
	if v.Null {
		return nil
	}
	return o.inner.Value(v.Value)
}
