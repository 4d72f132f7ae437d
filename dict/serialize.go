package dict

import (
	"errors"
	"io"
	"math"

	"github.com/brimdata/zcol"
	"github.com/brimdata/zcol/codec"
	"github.com/brimdata/zcol/column"
	"github.com/brimdata/zcol/zqe"
)

// An OutputGetter returns the writer for a stream path or nil if the
// stream is not wanted.
type OutputGetter func(zcol.Path) io.Writer

// An InputGetter returns the reader for a stream path or nil if the
// stream is not wanted.
type InputGetter func(zcol.Path) io.Reader

// SerializeState tracks whether the dictionary of a column has been
// written during the current pass.  Use one state per column per pass.
type SerializeState struct {
	DictionaryTransferred bool
	// DictionarySize is the number of values written to the elements
	// stream.
	DictionarySize uint64
}

// DeserializeState is the reading counterpart of SerializeState.
type DeserializeState struct {
	DictionaryTransferred bool
	DictionarySize        uint64
}

// MaxDictionarySize bounds the element count accepted from a stream.
const MaxDictionarySize = math.MaxInt32

// readBatch is the number of codes decoded per step when reading an
// indexes stream to its end.
const readBatch = 8192

func asDictionary(t *TypeDict, col column.Column) (column.Dictionary, error) {
	dcol, ok := col.(column.Dictionary)
	if !ok {
		return nil, zqe.ErrLogical("%s: %T is not a dictionary column", t, col)
	}
	return dcol, nil
}

func output(out OutputGetter, path zcol.Path) io.Writer {
	if out == nil {
		return nil
	}
	return out(path)
}

func input(in InputGetter, path zcol.Path) io.Reader {
	if in == nil {
		return nil
	}
	return in(path)
}

// SerializeBulk writes rows [offset, offset+limit) of col, where a limit
// of zero means through the last row.  The dictionary is written to the
// elements stream once per state, followed by the codes of the row range
// to the indexes stream.  A nil state writes the dictionary when offset
// is zero.  Streams for which out returns nil are skipped.
func (t *TypeDict) SerializeBulk(state *SerializeState, col column.Column, out OutputGetter, offset, limit int, path zcol.Path) error {
	dcol, err := asDictionary(t, col)
	if err != nil {
		return err
	}
	if offset < 0 || limit < 0 {
		return zqe.ErrInvalid("bad row range: offset %d, limit %d", offset, limit)
	}
	if w := output(out, path.Append(zcol.SubstreamDictionaryElements)); w != nil {
		if (state == nil && offset == 0) || (state != nil && !state.DictionaryTransferred) {
			size := dcol.DictLen()
			if err := codec.WriteCount(w, uint64(size)); err != nil {
				return err
			}
			if err := dcol.EncodeDict(w, size); err != nil {
				return err
			}
			if state != nil {
				state.DictionaryTransferred = true
				state.DictionarySize = uint64(size)
			}
		}
	}
	if w := output(out, path.Append(zcol.SubstreamDictionaryIndexes)); w != nil {
		if state != nil && state.DictionaryTransferred {
			if max, ok := dcol.MaxCode(offset, limit); ok && max >= state.DictionarySize {
				return zqe.ErrLogical("%s: code %d written after a dictionary of %d values was transferred", t, max, state.DictionarySize)
			}
		}
		if err := dcol.EncodeIndexes(w, offset, limit); err != nil {
			return err
		}
	}
	return nil
}

// DeserializeBulk reads up to limit rows into col, where a limit of zero
// means through the end of the indexes stream.  The dictionary is read
// from the elements stream once per state.  A nil state reads the
// dictionary when col has no rows.  Streams for which in returns nil are
// skipped.
func (t *TypeDict) DeserializeBulk(state *DeserializeState, col column.Column, in InputGetter, limit int, path zcol.Path) error {
	dcol, err := asDictionary(t, col)
	if err != nil {
		return err
	}
	if limit < 0 {
		return zqe.ErrInvalid("bad row limit %d", limit)
	}
	if r := input(in, path.Append(zcol.SubstreamDictionaryElements)); r != nil {
		if (state == nil && dcol.Len() == 0) || (state != nil && !state.DictionaryTransferred) {
			size, err := readDictionary(t, dcol, r)
			if err != nil {
				return err
			}
			if state != nil {
				state.DictionaryTransferred = true
				state.DictionarySize = size
			}
		}
	}
	if r := input(in, path.Append(zcol.SubstreamDictionaryIndexes)); r != nil {
		if limit > 0 {
			_, err := dcol.DecodeIndexes(r, limit)
			return err
		}
		for {
			n, err := dcol.DecodeIndexes(r, readBatch)
			if err != nil {
				return err
			}
			if n < readBatch {
				break
			}
		}
	}
	return nil
}

// readDictionary loads the elements stream into the empty store of dcol.
// The payload must be deduplicated since its order defines the codes.
func readDictionary(t *TypeDict, dcol column.Dictionary, r io.Reader) (uint64, error) {
	if dcol.DictLen() != 0 {
		return 0, zqe.ErrLogical("%s: dictionary read into a store holding %d values", t, dcol.DictLen())
	}
	size, err := codec.ReadCount(r)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	if size > MaxDictionarySize {
		return 0, zqe.ErrInvalid("dictionary element count %d too large", size)
	}
	if err := dcol.DecodeDict(r, int(size)); err != nil {
		if errors.Is(err, column.ErrDuplicateValues) {
			return 0, zqe.ErrInvalid(err)
		}
		return 0, err
	}
	return size, nil
}

// SerializeOne writes the value of row in the element codec's single-value
// form.
func (t *TypeDict) SerializeOne(col column.Column, row int, w io.Writer) error {
	dcol, err := asDictionary(t, col)
	if err != nil {
		return err
	}
	return dcol.EncodeValue(w, row)
}

// DeserializeOne reads a value in the element codec's single-value form
// and appends it to col as a new row.  If the value's code does not fit
// the index type, col is left unchanged.
func (t *TypeDict) DeserializeOne(col column.Column, r io.Reader) error {
	dcol, err := asDictionary(t, col)
	if err != nil {
		return err
	}
	if err := dcol.DecodeValue(r); err != nil {
		if errors.Is(err, column.ErrIndexOverflow) {
			return zqe.ErrInvalid(err)
		}
		return err
	}
	return nil
}
