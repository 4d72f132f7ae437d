// Package column implements dictionary columns: an array of per-row
// codes paired with a deduplicated store of the values they reference.
package column

import (
	"errors"
	"fmt"
	"io"

	"github.com/brimdata/zcol/codec"
)

// ErrDuplicateValues is returned when a dictionary payload holds the
// same value more than once.
var ErrDuplicateValues = errors.New("dictionary payload is not deduplicated")

// stageCap bounds the capacity reserved for a dictionary payload before
// any of it has been read.
const stageCap = 8192

// Dictionary is the representation-independent view of a dictionary
// column.  Implementations are not safe for concurrent use.
type Dictionary interface {
	Column
	// DictLen returns the number of distinct values in the store.
	DictLen() int
	// Code returns the dictionary code of row.
	Code(row int) uint64
	// MaxCode returns the largest code among rows [off, off+limit) and
	// false if the range is empty.  A limit of zero means through the
	// last row.
	MaxCode(off, limit int) (uint64, bool)

	// EncodeDict writes the first n dictionary values in bulk form.
	EncodeDict(w io.Writer, n int) error
	// DecodeDict reads exactly n values in bulk form into a staging
	// buffer and then inserts them into the store in order.  If the
	// values are not distinct, the store is left as it was and the
	// error is ErrDuplicateValues.
	DecodeDict(r io.Reader, n int) error
	// EncodeIndexes writes the codes of rows [off, off+limit) in bulk
	// form.  A limit of zero means through the last row.
	EncodeIndexes(w io.Writer, off, limit int) error
	// DecodeIndexes appends up to limit codes read in bulk form and
	// returns how many were read.
	DecodeIndexes(r io.Reader, limit int) (int, error)

	// EncodeValue writes the value of row in single-value form.
	EncodeValue(w io.Writer, row int) error
	// DecodeValue reads one value in single-value form and appends it
	// as a new row.
	DecodeValue(r io.Reader) error

	// AppendAny appends a Go value as a new row.
	AppendAny(any) error
	// AppendText appends the value denoted by its text form.
	AppendText(string) error
	// Row returns the Go value of row.
	Row(row int) any
	// FormatRow returns the text form of the value of row.
	FormatRow(row int) string
	// DictValues returns the Go values of the store in code order.
	DictValues() []any
	// FormatCode returns the text form of the store value with code.
	FormatCode(code uint64) string
}

// Dict is a dictionary column whose values have representation T and
// whose codes are stored as I.
type Dict[T comparable, I Index] struct {
	unique  *Unique[T]
	indexes *Indexes[I]
	values  codec.Codec[T]
	codes   codec.Codec[I]
}

var _ Dictionary = (*Dict[string, uint8])(nil)

func NewDict[T comparable, I Index](values codec.Codec[T], codes codec.Codec[I]) *Dict[T, I] {
	return &Dict[T, I]{
		unique:  NewUniqueFunc(codec.KeyFunc(values)),
		indexes: NewIndexes[I](),
		values:  values,
		codes:   codes,
	}
}

func (d *Dict[T, I]) Unique() *Unique[T] {
	return d.unique
}

func (d *Dict[T, I]) Indexes() *Indexes[I] {
	return d.indexes
}

func (d *Dict[T, I]) Len() int {
	return d.indexes.Len()
}

func (d *Dict[T, I]) DictLen() int {
	return d.unique.Len()
}

func (d *Dict[T, I]) Code(row int) uint64 {
	return d.indexes.Get(row)
}

func (d *Dict[T, I]) MaxCode(off, limit int) (uint64, bool) {
	codes := d.indexes.Range(off, limit)
	if len(codes) == 0 {
		return 0, false
	}
	max := codes[0]
	for _, c := range codes[1:] {
		if c > max {
			max = c
		}
	}
	return uint64(max), true
}

// Append adds v as a new row.  If v is new to the store but its code
// does not fit the index width, the store entry is removed again so
// that the store never holds a value no row references.
func (d *Dict[T, I]) Append(v T) error {
	before := d.unique.Len()
	code, _ := d.unique.Insert(v)
	if err := d.indexes.Append(code); err != nil {
		if grown := d.unique.Len() - before; grown > 0 {
			d.unique.PopBack(grown)
		}
		return err
	}
	return nil
}

func (d *Dict[T, I]) EncodeDict(w io.Writer, n int) error {
	vals := d.unique.Values()
	if n > len(vals) {
		return fmt.Errorf("dictionary has %d values, %d requested", len(vals), n)
	}
	return d.values.EncodeBulk(w, vals[:n])
}

func (d *Dict[T, I]) DecodeDict(r io.Reader, n int) error {
	size := n
	if size > stageCap {
		size = stageCap
	}
	staged, err := d.values.DecodeBulk(r, make([]T, 0, size), n)
	if err != nil {
		return err
	}
	if len(staged) != n {
		return fmt.Errorf("dictionary payload truncated: read %d of %d values: %w", len(staged), n, io.ErrUnexpectedEOF)
	}
	before := d.unique.Len()
	d.unique.InsertRange(staged)
	if grown := d.unique.Len() - before; grown != n {
		d.unique.PopBack(grown)
		return fmt.Errorf("%w: %d values, %d distinct", ErrDuplicateValues, n, grown)
	}
	return nil
}

func (d *Dict[T, I]) EncodeIndexes(w io.Writer, off, limit int) error {
	return d.codes.EncodeBulk(w, d.indexes.Range(off, limit))
}

func (d *Dict[T, I]) DecodeIndexes(r io.Reader, limit int) (int, error) {
	codes, err := d.codes.DecodeBulk(r, nil, limit)
	if err != nil {
		return 0, err
	}
	size := uint64(d.unique.Len())
	for k, c := range codes {
		if uint64(c) >= size {
			return 0, fmt.Errorf("code %d at row %d outside dictionary of size %d", c, d.Len()+k, size)
		}
	}
	d.indexes.Extend(codes)
	return len(codes), nil
}

func (d *Dict[T, I]) EncodeValue(w io.Writer, row int) error {
	if row < 0 || row >= d.Len() {
		return fmt.Errorf("row %d out of range (%d rows)", row, d.Len())
	}
	return d.values.Encode(w, d.unique.Value(d.indexes.Get(row)))
}

// DecodeValue stages the decoded value in a local before touching the
// column, then appends it through the store's normal insertion path.
func (d *Dict[T, I]) DecodeValue(r io.Reader) error {
	v, err := d.values.Decode(r)
	if err != nil {
		return err
	}
	return d.Append(v)
}

func (d *Dict[T, I]) AppendAny(v any) error {
	val, err := d.values.Coerce(v)
	if err != nil {
		return err
	}
	return d.Append(val)
}

func (d *Dict[T, I]) AppendText(s string) error {
	val, err := d.values.Parse(s)
	if err != nil {
		return err
	}
	return d.Append(val)
}

func (d *Dict[T, I]) Row(row int) any {
	return d.values.Value(d.unique.Value(d.indexes.Get(row)))
}

func (d *Dict[T, I]) FormatRow(row int) string {
	return d.values.Format(d.unique.Value(d.indexes.Get(row)))
}

func (d *Dict[T, I]) DictValues() []any {
	vals := d.unique.Values()
	out := make([]any, 0, len(vals))
	for _, v := range vals {
		out = append(out, d.values.Value(v))
	}
	return out
}

func (d *Dict[T, I]) FormatCode(code uint64) string {
	return d.values.Format(d.unique.Value(code))
}
