// Package stream implements stream objects: storage objects holding the
// physical streams of one column, each addressed by its substream path.
// A Writer hands out a writer per path and a Reader hands out a reader
// per path, so a column type can serialize itself without knowing how
// its streams are laid out.
package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/brimdata/zcol"
	"github.com/pierrec/lz4/v4"
	"github.com/segmentio/ksuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSegmentThresh = 5 * 1024 * 1024
	MaxSegmentThresh     = 1 << 30
)

var ErrClosed = errors.New("stream writer closed")

type WriterOpts struct {
	// SegmentThresh is the number of bytes buffered for a stream before
	// they are spilled as a segment.
	SegmentThresh int
	// Compress enables lz4 compression of segments.
	Compress bool
	// Skip lists paths whose streams, and the streams beneath them, are
	// not stored.
	Skip    []zcol.Path
	Logger  *zap.Logger
	Metrics *Metrics
}

func DefaultWriterOpts() WriterOpts {
	return WriterOpts{
		SegmentThresh: DefaultSegmentThresh,
		Compress:      true,
	}
}

// Writer builds a stream object.  It is not safe for concurrent use.
type Writer struct {
	writer  io.WriteCloser
	opts    WriterOpts
	logger  *zap.Logger
	spiller *Spiller
	typ     string
	rows    int
	streams []*streamWriter
	paths   map[string]*streamWriter
	err     error
	closed  bool
}

func NewWriter(w io.WriteCloser, typ zcol.Type, opts WriterOpts) (*Writer, error) {
	if opts.SegmentThresh <= 0 {
		return nil, fmt.Errorf("segment threshold must be positive (%d)", opts.SegmentThresh)
	}
	if opts.SegmentThresh > MaxSegmentThresh {
		return nil, fmt.Errorf("segment threshold too large (%d)", opts.SegmentThresh)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{
		writer:  w,
		opts:    opts,
		logger:  logger,
		spiller: NewSpiller(w, opts.Compress),
		typ:     typ.String(),
		paths:   make(map[string]*streamWriter),
	}, nil
}

// SetRows records the number of rows of the column for the metadata.
func (w *Writer) SetRows(n int) {
	w.rows = n
}

// Output returns the writer for the stream at path or nil if the path is
// skipped.  Repeated calls for a path return the same writer so that a
// stream may be written in chunks.
func (w *Writer) Output(path zcol.Path) io.Writer {
	if skipped(w.opts.Skip, path) {
		return nil
	}
	key := path.String()
	if s, ok := w.paths[key]; ok {
		return s
	}
	s := &streamWriter{parent: w, path: key}
	w.paths[key] = s
	w.streams = append(w.streams, s)
	return s
}

func (w *Writer) spill(s *streamWriter) error {
	var err error
	s.segments, err = w.spiller.Write(s.segments, s.buf)
	if err != nil {
		return err
	}
	seg := s.segments[len(s.segments)-1]
	w.logger.Debug("spilled segment",
		zap.String("path", s.path),
		zap.Int32("length", seg.Length),
		zap.Int32("mem_length", seg.MemLength),
		zap.Stringer("compression", seg.CompressionFormat))
	w.opts.Metrics.segmentWritten()
	s.buf = s.buf[:0]
	return nil
}

// flush spills the tail buffer of every stream.  Compression runs in
// parallel and the blocks are then written in stream order.
func (w *Writer) flush() error {
	type block struct {
		data []byte
		cf   CompressionFormat
	}
	blocks := make([]block, len(w.streams))
	var group errgroup.Group
	for k, s := range w.streams {
		if len(s.buf) == 0 {
			continue
		}
		k, b := k, s.buf
		if !w.opts.Compress {
			blocks[k] = block{b, CompressionFormatNone}
			continue
		}
		group.Go(func() error {
			var c lz4.Compressor
			var buf []byte
			data, cf, err := compress(&c, &buf, b)
			blocks[k] = block{data, cf}
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	for k, s := range w.streams {
		if len(s.buf) == 0 {
			continue
		}
		var err error
		s.segments, err = w.spiller.WriteBlock(s.segments, blocks[k].data, len(s.buf), blocks[k].cf)
		if err != nil {
			return err
		}
		w.opts.Metrics.segmentWritten()
		s.buf = nil
	}
	return nil
}

func (w *Writer) finalize() error {
	if w.err != nil {
		return w.err
	}
	if err := w.flush(); err != nil {
		return err
	}
	meta := &Metadata{
		ID:   ksuid.New().String(),
		Type: w.typ,
		Rows: w.rows,
	}
	for _, s := range w.streams {
		meta.Streams = append(meta.Streams, StreamMeta{Path: s.path, Segments: s.segments})
	}
	n, err := writeTrailer(w.writer, meta)
	if err != nil {
		return err
	}
	w.logger.Info("wrote stream object",
		zap.String("id", meta.ID),
		zap.String("type", meta.Type),
		zap.Int("rows", meta.Rows),
		zap.Int("streams", len(meta.Streams)),
		zap.Int64("size", w.spiller.Position()+int64(n)))
	return nil
}

// Close writes any buffered data and the trailer and closes the
// underlying writer.  If the trailer cannot be written, the object is
// aborted as by Abort.
func (w *Writer) Close() error {
	if w.closed {
		return ErrClosed
	}
	w.closed = true
	if err := w.finalize(); err != nil {
		return multierr.Append(err, w.abort())
	}
	return w.writer.Close()
}

// Abort discards the object.  If the underlying writer has an Abort
// method, as the local storage engine's writers do, it is called so that
// no partial object is left behind; otherwise the writer is closed
// without a trailer.
func (w *Writer) Abort() {
	if w.closed {
		return
	}
	w.closed = true
	if err := w.abort(); err != nil {
		w.logger.Debug("close of aborted stream object", zap.Error(err))
	}
}

func (w *Writer) abort() error {
	w.logger.Debug("aborted stream object", zap.String("type", w.typ))
	if a, ok := w.writer.(interface{ Abort() }); ok {
		a.Abort()
		return nil
	}
	return w.writer.Close()
}

type streamWriter struct {
	parent   *Writer
	path     string
	buf      []byte
	segments []Segment
}

func (s *streamWriter) Write(b []byte) (int, error) {
	w := s.parent
	if w.closed {
		return 0, ErrClosed
	}
	if w.err != nil {
		return 0, w.err
	}
	s.buf = append(s.buf, b...)
	w.opts.Metrics.wrote(s.path, len(b))
	if len(s.buf) >= w.opts.SegmentThresh {
		if err := w.spill(s); err != nil {
			w.err = err
			return 0, err
		}
	}
	return len(b), nil
}

// skipped reports whether path equals or lies beneath one of skip.
func skipped(skip []zcol.Path, path zcol.Path) bool {
	for _, prefix := range skip {
		if len(prefix) > len(path) {
			continue
		}
		match := true
		for k, s := range prefix {
			if path[k] != s {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
