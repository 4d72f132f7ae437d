package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/brimdata/zcol"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// Fixed encodes numbers as fixed-width little-endian values.
type Fixed[T Number] struct {
	size     int
	parse    func(string) (T, error)
	format   func(T) string
	fromTime func(time.Time) T
	key      func(T) any
}

var (
	Uint8   = newFixed(parseUint[uint8](8), formatUint[uint8])
	Uint16  = newFixed(parseUint[uint16](16), formatUint[uint16])
	Uint32  = newFixed(parseUint[uint32](32), formatUint[uint32])
	Uint64  = newFixed(parseUint[uint64](64), formatUint[uint64])
	Int8    = newFixed(parseInt[int8](8), formatInt[int8])
	Int16   = newFixed(parseInt[int16](16), formatInt[int16])
	Int32   = newFixed(parseInt[int32](32), formatInt[int32])
	Int64   = newFixed(parseInt[int64](64), formatInt[int64])
	// Floats are keyed by their bits so that NaN equals itself and -0
	// differs from +0.
	Float32 = newFloat(32, func(v float32) any { return math.Float32bits(v) })
	Float64 = newFloat(64, func(v float64) any { return math.Float64bits(v) })

	// Date is days since the epoch and DateTime is seconds since the epoch.
	Date     = newTimeFixed(parseDate, formatDate, zcol.EncodeDate)
	DateTime = newTimeFixed(parseDateTime, formatDateTime, zcol.EncodeDateTime)
)

func newFixed[T Number](parse func(string) (T, error), format func(T) string) *Fixed[T] {
	var zero T
	return &Fixed[T]{
		size:   binary.Size(zero),
		parse:  parse,
		format: format,
	}
}

func newTimeFixed[T Number](parse func(string) (T, error), format func(T) string, fromTime func(time.Time) T) *Fixed[T] {
	f := newFixed(parse, format)
	f.fromTime = fromTime
	return f
}

func newFloat[T constraints.Float](bits int, key func(T) any) *Fixed[T] {
	f := newFixed(parseFloat[T](bits), formatFloat[T](bits))
	f.key = key
	return f
}

func (f *Fixed[T]) KeyFunc() func(T) any {
	return f.key
}

// Size returns the number of bytes in an encoded value.
func (f *Fixed[T]) Size() int {
	return f.size
}

func (f *Fixed[T]) EncodeBulk(w io.Writer, vals []T) error {
	if len(vals) == 0 {
		return nil
	}
	return binary.Write(w, binary.LittleEndian, vals)
}

func (f *Fixed[T]) DecodeBulk(r io.Reader, dst []T, n int) ([]T, error) {
	if n <= 0 {
		return dst, nil
	}
	buf, err := readUpTo(r, n*f.size)
	if err != nil {
		return dst, err
	}
	cc := len(buf)
	if cc%f.size != 0 {
		return dst, io.ErrUnexpectedEOF
	}
	cnt := cc / f.size
	if cnt == 0 {
		return dst, nil
	}
	off := len(dst)
	dst = slices.Grow(dst, cnt)[:off+cnt]
	if err := binary.Read(bytes.NewReader(buf[:cc]), binary.LittleEndian, dst[off:]); err != nil {
		return dst[:off], err
	}
	return dst, nil
}

func (f *Fixed[T]) Encode(w io.Writer, v T) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func (f *Fixed[T]) Decode(r io.Reader) (T, error) {
	var v T
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func (f *Fixed[T]) Parse(s string) (T, error) {
	return f.parse(s)
}

func (f *Fixed[T]) Format(v T) string {
	return f.format(v)
}

func (f *Fixed[T]) Coerce(v any) (T, error) {
	switch v := v.(type) {
	case T:
		return v, nil
	case string:
		return f.parse(v)
	case time.Time:
		if f.fromTime != nil {
			return f.fromTime(v), nil
		}
	case int:
		out := T(v)
		if int(out) != v {
			return out, fmt.Errorf("value %d out of range for %T", v, out)
		}
		return out, nil
	}
	var zero T
	return zero, fmt.Errorf("cannot convert %T to %T", v, zero)
}

func (f *Fixed[T]) Value(v T) any {
	return v
}

func parseUint[T constraints.Unsigned](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		u, err := strconv.ParseUint(s, 10, bits)
		return T(u), err
	}
}

func formatUint[T constraints.Unsigned](v T) string {
	return strconv.FormatUint(uint64(v), 10)
}

func parseInt[T constraints.Signed](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		i, err := strconv.ParseInt(s, 10, bits)
		return T(i), err
	}
}

func formatInt[T constraints.Signed](v T) string {
	return strconv.FormatInt(int64(v), 10)
}

func parseFloat[T constraints.Float](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		f, err := strconv.ParseFloat(s, bits)
		return T(f), err
	}
}

func formatFloat[T constraints.Float](bits int) func(T) string {
	return func(v T) string {
		return strconv.FormatFloat(float64(v), 'g', -1, bits)
	}
}

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// parseTime accepts layout and falls back to the formats recognized by
// dateparse, interpreting zoneless times as UTC.
func parseTime(layout, s string) (time.Time, error) {
	if t, err := time.Parse(layout, s); err == nil {
		return t, nil
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse %q as a time: %w", s, err)
	}
	return t, nil
}

func parseDate(s string) (uint16, error) {
	t, err := parseTime(dateLayout, s)
	if err != nil {
		return 0, err
	}
	return zcol.EncodeDate(t), nil
}

func formatDate(v uint16) string {
	return zcol.DecodeDate(v).Format(dateLayout)
}

func parseDateTime(s string) (uint32, error) {
	t, err := parseTime(dateTimeLayout, s)
	if err != nil {
		return 0, err
	}
	return zcol.EncodeDateTime(t), nil
}

func formatDateTime(v uint32) string {
	return zcol.DecodeDateTime(v).Format(dateTimeLayout)
}
