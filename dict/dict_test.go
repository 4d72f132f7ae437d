package dict_test

import (
	"bytes"
	"errors"
	"io"
	"math"
	"runtime"
	"testing"

	"github.com/brimdata/zcol"
	"github.com/brimdata/zcol/codec"
	"github.com/brimdata/zcol/column"
	"github.com/brimdata/zcol/dict"
	"github.com/brimdata/zcol/zqe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// streams is an in-memory stream router keyed by path.
type streams map[string]*bytes.Buffer

func (s streams) output(path zcol.Path) io.Writer {
	key := path.String()
	if s[key] == nil {
		s[key] = &bytes.Buffer{}
	}
	return s[key]
}

func (s streams) input(path zcol.Path) io.Reader {
	if b, ok := s[path.String()]; ok {
		return b
	}
	return nil
}

func skip(out dict.OutputGetter, skipped zcol.Substream) dict.OutputGetter {
	return func(path zcol.Path) io.Writer {
		if path[len(path)-1] == skipped {
			return nil
		}
		return out(path)
	}
}

func newColumn(t *testing.T, typ *dict.TypeDict, vals ...any) column.Dictionary {
	t.Helper()
	col, err := typ.NewColumn()
	require.NoError(t, err)
	for _, v := range vals {
		require.NoError(t, col.AppendAny(v))
	}
	return col
}

func rows(col column.Dictionary) []any {
	out := make([]any, 0, col.Len())
	for k := 0; k < col.Len(); k++ {
		out = append(out, col.Row(k))
	}
	return out
}

func codes(col column.Dictionary) []uint64 {
	out := make([]uint64, 0, col.Len())
	for k := 0; k < col.Len(); k++ {
		out = append(out, col.Code(k))
	}
	return out
}

func mustNew(t *testing.T, elem, index zcol.Type) *dict.TypeDict {
	t.Helper()
	typ, err := dict.New(elem, index)
	require.NoError(t, err)
	return typ
}

func fixedString(t *testing.T, width int) zcol.Type {
	typ, err := zcol.NewTypeFixedString(width)
	require.NoError(t, err)
	return typ
}

func TestNewIndexType(t *testing.T) {
	for id := zcol.IDUint8; id <= zcol.IDIP; id++ {
		index := zcol.LookupPrimitiveByID(id)
		t.Run(index.String(), func(t *testing.T) {
			_, err := dict.New(zcol.TypeString, index)
			if zcol.IsUnsigned(id) {
				assert.NoError(t, err)
			} else {
				assert.True(t, zqe.IsKind(err, zqe.IllegalType), "%v", err)
			}
		})
	}
	_, err := dict.New(zcol.TypeString, zcol.NewTypeOptional(zcol.TypeUint8))
	assert.True(t, zqe.IsKind(err, zqe.IllegalType))
}

func TestNewElemType(t *testing.T) {
	good := []zcol.Type{
		zcol.TypeUint8, zcol.TypeUint16, zcol.TypeUint32, zcol.TypeUint64,
		zcol.TypeInt8, zcol.TypeInt16, zcol.TypeInt32, zcol.TypeInt64,
		zcol.TypeFloat32, zcol.TypeFloat64,
		zcol.TypeString, fixedString(t, 4),
		zcol.TypeDate, zcol.TypeDateTime,
	}
	for _, elem := range good {
		for _, typ := range []zcol.Type{elem, zcol.NewTypeOptional(elem)} {
			t.Run(typ.String(), func(t *testing.T) {
				_, err := dict.New(typ, zcol.TypeUint16)
				assert.NoError(t, err)
			})
		}
	}
	bad := []zcol.Type{
		zcol.TypeBool,
		zcol.TypeBytes,
		zcol.TypeIP,
		zcol.NewTypeOptional(zcol.TypeBool),
		zcol.NewTypeOptional(zcol.NewTypeOptional(zcol.TypeString)),
		zcol.NewTypeArray(zcol.TypeString),
		mustNew(t, zcol.TypeString, zcol.TypeUint8),
	}
	for _, typ := range bad {
		t.Run(typ.String(), func(t *testing.T) {
			_, err := dict.New(typ, zcol.TypeUint16)
			assert.True(t, zqe.IsKind(err, zqe.IllegalType), "%v", err)
		})
	}
}

func TestEqual(t *testing.T) {
	a := mustNew(t, zcol.TypeString, zcol.TypeUint8)
	b := mustNew(t, zcol.TypeString, zcol.TypeUint8)
	c := mustNew(t, zcol.TypeString, zcol.TypeUint16)
	d := mustNew(t, fixedString(t, 3), zcol.TypeUint8)
	e := mustNew(t, fixedString(t, 4), zcol.TypeUint8)
	f := mustNew(t, zcol.NewTypeOptional(zcol.TypeString), zcol.TypeUint8)

	assert.True(t, a.Equal(a))
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.False(t, a.Equal(c))
	assert.False(t, c.Equal(a))
	assert.False(t, d.Equal(e))
	assert.True(t, d.Equal(mustNew(t, fixedString(t, 3), zcol.TypeUint8)))
	assert.False(t, a.Equal(f))
	assert.False(t, a.Equal(zcol.TypeString))
	assert.False(t, zcol.TypeString.Equal(a))
	assert.False(t, a.Equal(nil))
}

func TestString(t *testing.T) {
	typ := mustNew(t, zcol.NewTypeOptional(zcol.TypeString), zcol.TypeUint16)
	assert.Equal(t, "Dictionary(Optional(string), uint16)", typ.String())
}

func TestEnumerateStreams(t *testing.T) {
	var paths []string
	for _, p := range zcol.Streams(mustNew(t, zcol.TypeString, zcol.TypeUint8)) {
		paths = append(paths, p.String())
	}
	assert.Equal(t, []string{"DictionaryElements", "DictionaryIndexes"}, paths)

	paths = nil
	typ := mustNew(t, zcol.NewTypeOptional(zcol.TypeString), zcol.TypeUint8)
	for _, p := range zcol.Streams(typ) {
		paths = append(paths, p.String())
	}
	expected := []string{
		"DictionaryElements.NullMap",
		"DictionaryElements.NullableElements",
		"DictionaryIndexes",
	}
	assert.Equal(t, expected, paths)

	paths = nil
	typ.EnumerateStreams(func(p zcol.Path) {
		paths = append(paths, p.String())
	}, zcol.Path{zcol.SubstreamArrayElements})
	assert.Equal(t, "ArrayElements.DictionaryIndexes", paths[2])
}

func TestEndToEnd(t *testing.T) {
	typ := mustNew(t, zcol.TypeString, zcol.TypeUint8)
	col := newColumn(t, typ, "a", "b", "a", "c")
	assert.Equal(t, []any{"a", "b", "c"}, col.DictValues())
	assert.Equal(t, []uint64{0, 1, 0, 2}, codes(col))

	s := streams{}
	require.NoError(t, typ.SerializeBulk(nil, col, s.output, 0, 0, nil))
	elements := []byte{3, 0, 0, 0, 0, 0, 0, 0, 1, 'a', 1, 'b', 1, 'c'}
	assert.Equal(t, elements, s["DictionaryElements"].Bytes())
	assert.Equal(t, []byte{0, 1, 0, 2}, s["DictionaryIndexes"].Bytes())

	out, err := typ.NewColumn()
	require.NoError(t, err)
	require.NoError(t, typ.DeserializeBulk(nil, out, s.input, 0, nil))
	assert.Equal(t, []any{"a", "b", "a", "c"}, rows(out))
	assert.Equal(t, []uint64{0, 1, 0, 2}, codes(out))
}

func TestEmptyRoundTrip(t *testing.T) {
	typ := mustNew(t, zcol.TypeInt64, zcol.TypeUint32)
	col := newColumn(t, typ)
	s := streams{}
	require.NoError(t, typ.SerializeBulk(nil, col, s.output, 0, 0, nil))
	assert.Equal(t, make([]byte, 8), s["DictionaryElements"].Bytes())
	assert.Zero(t, s["DictionaryIndexes"].Len())

	out := newColumn(t, typ)
	require.NoError(t, typ.DeserializeBulk(nil, out, s.input, 0, nil))
	assert.Zero(t, out.Len())
	assert.Zero(t, out.DictLen())
}

func TestRoundTripTypes(t *testing.T) {
	cases := []struct {
		elem zcol.Type
		vals []any
	}{
		{zcol.TypeUint16, []any{uint16(7), uint16(9), uint16(7)}},
		{zcol.TypeInt8, []any{int8(-1), int8(1), int8(-1), int8(0)}},
		{zcol.TypeFloat64, []any{1.5, 2.5, 1.5}},
		{zcol.TypeDate, []any{"2020-01-02", "1999-12-31", "2020-01-02"}},
		{zcol.TypeDateTime, []any{"2020-01-02 03:04:05", "2020-01-02 03:04:05"}},
		{fixedString(t, 3), []any{"ab", "abc", "ab"}},
		{zcol.NewTypeOptional(zcol.TypeString), []any{nil, "x", nil, "y"}},
		{zcol.NewTypeOptional(zcol.TypeInt32), []any{int32(5), nil, int32(5)}},
	}
	for _, c := range cases {
		for _, index := range []zcol.Type{zcol.TypeUint8, zcol.TypeUint64} {
			typ := mustNew(t, c.elem, index)
			t.Run(typ.String(), func(t *testing.T) {
				col := newColumn(t, typ, c.vals...)
				s := streams{}
				require.NoError(t, typ.SerializeBulk(nil, col, s.output, 0, 0, nil))
				out := newColumn(t, typ)
				require.NoError(t, typ.DeserializeBulk(nil, out, s.input, 0, nil))
				assert.Equal(t, rows(col), rows(out))
				assert.Equal(t, col.DictValues(), out.DictValues())
			})
		}
	}
}

func TestFloatBitPatterns(t *testing.T) {
	typ := mustNew(t, zcol.TypeFloat64, zcol.TypeUint8)
	negZero := math.Copysign(0, -1)
	col := newColumn(t, typ, 0.0, negZero, math.NaN(), math.NaN(), 0.0)
	assert.Equal(t, 3, col.DictLen())
	assert.Equal(t, []uint64{0, 1, 2, 2, 0}, codes(col))

	s := streams{}
	require.NoError(t, typ.SerializeBulk(nil, col, s.output, 0, 0, nil))
	out := newColumn(t, typ)
	require.NoError(t, typ.DeserializeBulk(nil, out, s.input, 0, nil))
	assert.Equal(t, codes(col), codes(out))
	assert.False(t, math.Signbit(out.Row(0).(float64)))
	assert.True(t, math.Signbit(out.Row(1).(float64)))
	assert.True(t, math.IsNaN(out.Row(3).(float64)))

	opt := mustNew(t, zcol.NewTypeOptional(zcol.TypeFloat32), zcol.TypeUint8)
	col = newColumn(t, opt, nil, float32(math.NaN()), nil, float32(math.NaN()))
	assert.Equal(t, 2, col.DictLen())
	assert.Equal(t, []uint64{0, 1, 0, 1}, codes(col))
}

func TestOptionalPayload(t *testing.T) {
	typ := mustNew(t, zcol.NewTypeOptional(zcol.TypeString), zcol.TypeUint8)
	col := newColumn(t, typ, nil, "x", nil)
	assert.Equal(t, []any{nil, "x", nil}, rows(col))
	assert.Equal(t, 2, col.DictLen())

	s := streams{}
	require.NoError(t, typ.SerializeBulk(nil, col, s.output, 0, 0, nil))
	elements := []byte{2, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 'x'}
	assert.Equal(t, elements, s["DictionaryElements"].Bytes())
	assert.Equal(t, []byte{0, 1, 0}, s["DictionaryIndexes"].Bytes())
}

func TestChunkedPass(t *testing.T) {
	typ := mustNew(t, zcol.TypeString, zcol.TypeUint16)
	col := newColumn(t, typ, "a", "b", "a", "c", "b")
	s := streams{}
	var wstate dict.SerializeState
	require.NoError(t, typ.SerializeBulk(&wstate, col, s.output, 0, 2, nil))
	require.NoError(t, typ.SerializeBulk(&wstate, col, s.output, 2, 2, nil))
	require.NoError(t, typ.SerializeBulk(&wstate, col, s.output, 4, 2, nil))
	assert.True(t, wstate.DictionaryTransferred)
	assert.EqualValues(t, 3, wstate.DictionarySize)
	assert.Equal(t, 8+6, s["DictionaryElements"].Len())
	assert.Equal(t, 5*2, s["DictionaryIndexes"].Len())

	out := newColumn(t, typ)
	var rstate dict.DeserializeState
	require.NoError(t, typ.DeserializeBulk(&rstate, out, s.input, 2, nil))
	assert.Equal(t, 2, out.Len())
	require.NoError(t, typ.DeserializeBulk(&rstate, out, s.input, 2, nil))
	require.NoError(t, typ.DeserializeBulk(&rstate, out, s.input, 2, nil))
	assert.Equal(t, rows(col), rows(out))
	assert.True(t, rstate.DictionaryTransferred)
	assert.EqualValues(t, 3, rstate.DictionarySize)
}

func TestOffsetGate(t *testing.T) {
	typ := mustNew(t, zcol.TypeString, zcol.TypeUint8)
	col := newColumn(t, typ, "a", "b")
	s := streams{}
	require.NoError(t, typ.SerializeBulk(nil, col, s.output, 1, 1, nil))
	assert.Zero(t, s["DictionaryElements"].Len())
	assert.Equal(t, []byte{1}, s["DictionaryIndexes"].Bytes())
}

func TestGrowthAfterTransfer(t *testing.T) {
	typ := mustNew(t, zcol.TypeString, zcol.TypeUint8)
	col := newColumn(t, typ, "a", "b")
	s := streams{}
	var state dict.SerializeState
	require.NoError(t, typ.SerializeBulk(&state, col, s.output, 0, 0, nil))
	require.NoError(t, col.AppendAny("a"))
	require.NoError(t, typ.SerializeBulk(&state, col, s.output, 2, 0, nil))
	require.NoError(t, col.AppendAny("c"))
	err := typ.SerializeBulk(&state, col, s.output, 3, 0, nil)
	assert.True(t, zqe.IsLogical(err), "%v", err)
}

func TestSkipStreams(t *testing.T) {
	typ := mustNew(t, zcol.TypeString, zcol.TypeUint8)
	col := newColumn(t, typ, "a", "b", "a")

	s := streams{}
	require.NoError(t, typ.SerializeBulk(nil, col, skip(s.output, zcol.SubstreamDictionaryElements), 0, 0, nil))
	_, ok := s["DictionaryElements"]
	assert.False(t, ok)
	assert.Equal(t, []byte{0, 1, 0}, s["DictionaryIndexes"].Bytes())

	s = streams{}
	require.NoError(t, typ.SerializeBulk(nil, col, skip(s.output, zcol.SubstreamDictionaryIndexes), 0, 0, nil))
	_, ok = s["DictionaryIndexes"]
	assert.False(t, ok)

	out := newColumn(t, typ)
	require.NoError(t, typ.DeserializeBulk(nil, out, s.input, 0, nil))
	assert.Zero(t, out.Len())
	assert.Equal(t, []any{"a", "b"}, out.DictValues())

	require.NoError(t, typ.SerializeBulk(nil, col, nil, 0, 0, nil))
}

func TestNotDictionaryColumn(t *testing.T) {
	typ := mustNew(t, zcol.TypeString, zcol.TypeUint8)
	s := streams{}
	err := typ.SerializeBulk(nil, plainColumn(3), s.output, 0, 0, nil)
	assert.True(t, zqe.IsLogical(err), "%v", err)
	err = typ.DeserializeBulk(nil, plainColumn(0), s.input, 0, nil)
	assert.True(t, zqe.IsLogical(err), "%v", err)
	err = typ.SerializeOne(plainColumn(1), 0, &bytes.Buffer{})
	assert.True(t, zqe.IsLogical(err), "%v", err)
	err = typ.DeserializeOne(plainColumn(1), &bytes.Buffer{})
	assert.True(t, zqe.IsLogical(err), "%v", err)
	assert.Empty(t, s)
}

type plainColumn int

func (p plainColumn) Len() int {
	return int(p)
}

func TestDuplicatePayload(t *testing.T) {
	typ := mustNew(t, zcol.TypeString, zcol.TypeUint8)
	var elements bytes.Buffer
	require.NoError(t, codec.WriteCount(&elements, 2))
	require.NoError(t, codec.Strings.EncodeBulk(&elements, []string{"a", "a"}))
	s := streams{"DictionaryElements": &elements}
	out := newColumn(t, typ)
	err := typ.DeserializeBulk(nil, out, s.input, 0, nil)
	assert.True(t, zqe.IsInvalid(err), "%v", err)
	assert.Zero(t, out.DictLen())

	elements.Reset()
	require.NoError(t, codec.WriteCount(&elements, 2))
	require.NoError(t, codec.Strings.EncodeBulk(&elements, []string{"a", "b"}))
	require.NoError(t, typ.DeserializeBulk(nil, out, s.input, 0, nil))
	assert.Equal(t, []any{"a", "b"}, out.DictValues())
}

func TestHugeCountWithoutPayload(t *testing.T) {
	for _, elem := range []zcol.Type{zcol.TypeUint64, zcol.NewTypeOptional(zcol.TypeUint64)} {
		typ := mustNew(t, elem, zcol.TypeUint32)
		var elements bytes.Buffer
		require.NoError(t, codec.WriteCount(&elements, 1<<26))
		s := streams{"DictionaryElements": &elements}
		var before, after runtime.MemStats
		runtime.GC()
		runtime.ReadMemStats(&before)
		err := typ.DeserializeBulk(nil, newColumn(t, typ), s.input, 0, nil)
		runtime.ReadMemStats(&after)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(64<<20), typ.String())
	}
}

func TestTruncatedPayload(t *testing.T) {
	typ := mustNew(t, zcol.TypeString, zcol.TypeUint8)
	var elements bytes.Buffer
	require.NoError(t, codec.WriteCount(&elements, 3))
	require.NoError(t, codec.Strings.EncodeBulk(&elements, []string{"a", "b"}))
	s := streams{"DictionaryElements": &elements}
	err := typ.DeserializeBulk(nil, newColumn(t, typ), s.input, 0, nil)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	s = streams{"DictionaryElements": bytes.NewBuffer([]byte{1, 0})}
	err = typ.DeserializeBulk(nil, newColumn(t, typ), s.input, 0, nil)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestCodeOutOfRange(t *testing.T) {
	typ := mustNew(t, zcol.TypeString, zcol.TypeUint8)
	var elements bytes.Buffer
	require.NoError(t, codec.WriteCount(&elements, 1))
	require.NoError(t, codec.Strings.EncodeBulk(&elements, []string{"a"}))
	s := streams{
		"DictionaryElements": &elements,
		"DictionaryIndexes":  bytes.NewBuffer([]byte{0, 5}),
	}
	out := newColumn(t, typ)
	assert.Error(t, typ.DeserializeBulk(nil, out, s.input, 0, nil))
	assert.Zero(t, out.Len())
}

func TestSingleValue(t *testing.T) {
	typ := mustNew(t, zcol.TypeString, zcol.TypeUint8)
	col := newColumn(t, typ, "a", "b", "a", "c")

	var b bytes.Buffer
	require.NoError(t, typ.SerializeOne(col, 2, &b))
	var plain bytes.Buffer
	require.NoError(t, codec.Strings.Encode(&plain, "a"))
	assert.Equal(t, plain.Bytes(), b.Bytes())

	require.NoError(t, typ.SerializeOne(col, 3, &b))
	out := newColumn(t, typ)
	require.NoError(t, typ.DeserializeOne(out, &b))
	assert.Equal(t, 1, out.Len())
	require.NoError(t, typ.DeserializeOne(out, &b))
	assert.Equal(t, []any{"a", "c"}, rows(out))

	assert.Error(t, typ.SerializeOne(col, 4, &b))
	assert.ErrorIs(t, typ.DeserializeOne(out, &b), io.EOF)
	assert.Equal(t, 2, out.Len())
}

func TestSingleValueOverflow(t *testing.T) {
	typ := mustNew(t, zcol.TypeUint16, zcol.TypeUint8)
	col := newColumn(t, typ)
	var b bytes.Buffer
	for k := 0; k < 256; k++ {
		require.NoError(t, codec.Uint16.Encode(&b, uint16(k)))
		require.NoError(t, typ.DeserializeOne(col, &b))
	}
	assert.Equal(t, 256, col.Len())
	assert.Equal(t, 256, col.DictLen())

	require.NoError(t, codec.Uint16.Encode(&b, 256))
	err := typ.DeserializeOne(col, &b)
	assert.True(t, zqe.IsInvalid(err), "%v", err)
	assert.True(t, errors.Is(err, column.ErrIndexOverflow))
	assert.Equal(t, 256, col.Len())
	assert.Equal(t, 256, col.DictLen())

	require.NoError(t, codec.Uint16.Encode(&b, 5))
	require.NoError(t, typ.DeserializeOne(col, &b))
	assert.Equal(t, 257, col.Len())
	assert.Equal(t, 256, col.DictLen())
	assert.EqualValues(t, 5, col.Code(256))
}

func TestFixedStringValues(t *testing.T) {
	typ := mustNew(t, fixedString(t, 3), zcol.TypeUint8)
	col := newColumn(t, typ, "ab")
	assert.Equal(t, "ab\x00", col.Row(0))
	assert.Equal(t, "ab", col.FormatRow(0))
	assert.ErrorIs(t, col.AppendAny("abcd"), codec.ErrValueTooLong)
	assert.Equal(t, 1, col.Len())
	assert.Equal(t, 1, col.DictLen())
}

func TestRegistry(t *testing.T) {
	zctx := dict.NewContext()
	typ, err := zctx.LookupByName("Dictionary(Optional(string), uint16)")
	require.NoError(t, err)
	assert.True(t, typ.Equal(mustNew(t, zcol.NewTypeOptional(zcol.TypeString), zcol.TypeUint16)))

	typ, err = zctx.LookupByName("Dictionary(FixedString(8),uint8)")
	require.NoError(t, err)
	assert.Equal(t, "Dictionary(FixedString(8), uint8)", typ.String())

	cases := []struct {
		expr string
		kind zqe.Kind
	}{
		{"Dictionary", zqe.ArgumentCount},
		{"Dictionary()", zqe.ArgumentCount},
		{"Dictionary(string)", zqe.ArgumentCount},
		{"Dictionary(string, uint8, uint8)", zqe.ArgumentCount},
		{"Dictionary(string, int8)", zqe.IllegalType},
		{"Dictionary(bool, uint8)", zqe.IllegalType},
		{"Dictionary(string, 8)", zqe.IllegalType},
		{"Dictionary(nosuch, uint8)", zqe.NotFound},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			_, err := zctx.LookupByName(c.expr)
			assert.True(t, zqe.IsKind(err, c.kind), "%v", err)
		})
	}
	assert.True(t, zqe.IsExists(dict.Register(zctx)))
}
