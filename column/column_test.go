package column_test

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/brimdata/zcol/codec"
	"github.com/brimdata/zcol/column"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnique(t *testing.T) {
	u := column.NewUnique[string]()
	code, added := u.Insert("a")
	assert.Equal(t, uint64(0), code)
	assert.True(t, added)
	code, added = u.Insert("a")
	assert.Equal(t, uint64(0), code)
	assert.False(t, added)
	assert.Equal(t, []uint64{1, 0, 2}, u.InsertRange([]string{"b", "a", "c"}))
	assert.Equal(t, []string{"a", "b", "c"}, u.Values())

	u.PopBack(2)
	assert.Equal(t, 1, u.Len())
	_, ok := u.Lookup("b")
	assert.False(t, ok)
	code, added = u.Insert("c")
	assert.Equal(t, uint64(1), code)
	assert.True(t, added)
}

func TestUniqueFloatBits(t *testing.T) {
	d := column.NewDict[float64, uint8](codec.Float64, codec.Uint8)
	for k := 0; k < 3; k++ {
		require.NoError(t, d.AppendAny(math.NaN()))
	}
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 1, d.DictLen())
	assert.Equal(t, uint64(0), d.Code(2))

	require.NoError(t, d.Append(0))
	require.NoError(t, d.Append(math.Copysign(0, -1)))
	assert.Equal(t, 3, d.DictLen())
	assert.False(t, math.Signbit(d.Row(3).(float64)))
	assert.True(t, math.Signbit(d.Row(4).(float64)))

	u := column.NewUniqueFunc(codec.KeyFunc[float64](codec.Float64))
	u.Insert(math.NaN())
	u.PopBack(1)
	_, ok := u.Lookup(math.NaN())
	assert.False(t, ok)
	code, added := u.Insert(math.NaN())
	assert.Equal(t, uint64(0), code)
	assert.True(t, added)

	opt := column.NewDict[codec.Opt[float32], uint8](codec.NewOptional[float32](codec.Float32), codec.Uint8)
	for _, v := range []any{nil, float32(math.NaN()), nil, float32(math.NaN())} {
		require.NoError(t, opt.AppendAny(v))
	}
	assert.Equal(t, 2, opt.DictLen())
	assert.Equal(t, uint64(1), opt.Code(3))
}

func TestIndexesOverflow(t *testing.T) {
	x := column.NewIndexes[uint8]()
	require.NoError(t, x.Append(255))
	assert.ErrorIs(t, x.Append(256), column.ErrIndexOverflow)
	assert.Equal(t, 1, x.Len())

	x.Extend([]uint8{1, 2, 3})
	assert.Equal(t, []uint8{1, 2}, x.Range(1, 2))
	assert.Equal(t, []uint8{2, 3}, x.Range(2, 0))
	assert.Nil(t, x.Range(4, 1))
	x.Truncate(2)
	assert.Equal(t, []uint8{255, 1}, x.Values())
}

func TestDictAppendRollback(t *testing.T) {
	d := column.NewDict[uint16, uint8](codec.Uint16, codec.Uint8)
	for k := 0; k < 256; k++ {
		require.NoError(t, d.Append(uint16(k)))
	}
	require.NoError(t, d.Append(7))
	assert.ErrorIs(t, d.Append(1000), column.ErrIndexOverflow)
	assert.Equal(t, 257, d.Len())
	assert.Equal(t, 256, d.DictLen())
	_, ok := d.Unique().Lookup(1000)
	assert.False(t, ok)

	max, ok := d.MaxCode(0, 0)
	require.True(t, ok)
	assert.Equal(t, uint64(255), max)
	max, ok = d.MaxCode(250, 3)
	require.True(t, ok)
	assert.Equal(t, uint64(252), max)
	_, ok = d.MaxCode(257, 0)
	assert.False(t, ok)
}

func TestDictBulk(t *testing.T) {
	d := column.NewDict[string, uint8](codec.Strings, codec.Uint8)
	for _, s := range []string{"x", "y", "x", "z"} {
		require.NoError(t, d.AppendText(s))
	}
	var dict, idx bytes.Buffer
	require.NoError(t, d.EncodeDict(&dict, d.DictLen()))
	assert.Error(t, d.EncodeDict(&dict, 4))
	require.NoError(t, d.EncodeIndexes(&idx, 1, 2))
	assert.Equal(t, []byte{1, 0}, idx.Bytes())

	out := column.NewDict[string, uint8](codec.Strings, codec.Uint8)
	require.NoError(t, out.DecodeDict(&dict, 3))
	assert.Equal(t, []any{"x", "y", "z"}, out.DictValues())
	n, err := out.DecodeIndexes(&idx, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "y", out.FormatRow(0))
	assert.Equal(t, "x", out.Row(1))
	assert.Equal(t, "z", out.FormatCode(2))

	_, err = out.DecodeIndexes(bytes.NewReader([]byte{3}), 1)
	assert.Error(t, err)
	assert.Equal(t, 2, out.Len())

	err = out.DecodeDict(bytes.NewReader([]byte{1, 'q'}), 2)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestDecodeDictDuplicates(t *testing.T) {
	var payload bytes.Buffer
	require.NoError(t, codec.Strings.EncodeBulk(&payload, []string{"a", "b", "a"}))
	d := column.NewDict[string, uint8](codec.Strings, codec.Uint8)
	err := d.DecodeDict(&payload, 3)
	assert.ErrorIs(t, err, column.ErrDuplicateValues)
	assert.Zero(t, d.DictLen())
	_, ok := d.Unique().Lookup("a")
	assert.False(t, ok)
}

func TestDictValue(t *testing.T) {
	d := column.NewDict[int64, uint32](codec.Int64, codec.Uint32)
	require.NoError(t, d.AppendAny(int64(-4)))
	var buf bytes.Buffer
	require.NoError(t, d.EncodeValue(&buf, 0))
	assert.Error(t, d.EncodeValue(&buf, 1))
	require.NoError(t, d.DecodeValue(&buf))
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, 1, d.DictLen())
	assert.Equal(t, uint64(0), d.Code(1))
	assert.Error(t, d.AppendAny("bad"))
}
