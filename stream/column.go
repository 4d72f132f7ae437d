package stream

import (
	"fmt"

	"github.com/brimdata/zcol"
	"github.com/brimdata/zcol/column"
	"github.com/brimdata/zcol/dict"
	"github.com/brimdata/zcol/zqe"
	"github.com/brimdata/zcol/ztype"
)

const DefaultChunkRows = 64 * 1024

// WriteColumn serializes col to w in chunks of chunkRows rows, writing
// the dictionary once at the start of the pass.
func WriteColumn(w *Writer, typ *dict.TypeDict, col column.Dictionary, chunkRows int) error {
	if chunkRows <= 0 {
		chunkRows = DefaultChunkRows
	}
	var state dict.SerializeState
	n := col.Len()
	for off := 0; off == 0 || off < n; off += chunkRows {
		if err := typ.SerializeBulk(&state, col, w.Output, off, chunkRows, nil); err != nil {
			return err
		}
	}
	w.SetRows(n)
	return nil
}

// ReadColumn materializes the dictionary column stored in r, reading it
// in chunks of chunkRows rows.  When the indexes stream is skipped, the
// returned column has a dictionary but no rows.
func ReadColumn(r *Reader, zctx *ztype.Context, chunkRows int) (*dict.TypeDict, column.Dictionary, error) {
	if chunkRows <= 0 {
		chunkRows = DefaultChunkRows
	}
	meta := r.Metadata()
	typ, err := zctx.LookupByName(meta.Type)
	if err != nil {
		return nil, nil, err
	}
	dtyp, ok := typ.(*dict.TypeDict)
	if !ok {
		return nil, nil, zqe.ErrInvalid("stream object type %s is not a dictionary type", typ)
	}
	col, err := dtyp.NewColumn()
	if err != nil {
		return nil, nil, err
	}
	var state dict.DeserializeState
	for {
		before := col.Len()
		limit := meta.Rows - before
		if limit > chunkRows {
			limit = chunkRows
		}
		if limit == 0 && before > 0 {
			break
		}
		if err := dtyp.DeserializeBulk(&state, col, r.Input, limit, nil); err != nil {
			return nil, nil, err
		}
		if col.Len() == before {
			break
		}
	}
	indexed := r.Input(zcol.Path{zcol.SubstreamDictionaryIndexes}) != nil
	if indexed && col.Len() != meta.Rows {
		return nil, nil, fmt.Errorf("stream object %s: read %d rows, expected %d", meta.ID, col.Len(), meta.Rows)
	}
	return dtyp, col, nil
}
