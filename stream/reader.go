package stream

import (
	"io"

	"github.com/brimdata/zcol"
	"go.uber.org/zap"
)

type ReaderOpts struct {
	// Skip lists paths whose streams, and the streams beneath them, are
	// reported as absent.
	Skip    []zcol.Path
	Logger  *zap.Logger
	Metrics *Metrics
}

// Reader provides sequential access to the streams of a stream object.
// It is not safe for concurrent use.
type Reader struct {
	reader  io.ReaderAt
	opts    ReaderOpts
	logger  *zap.Logger
	meta    *Metadata
	streams map[string]*StreamMeta
	readers map[string]*streamReader
}

func NewReader(r io.ReaderAt, size int64, opts ReaderOpts) (*Reader, error) {
	meta, dataSize, err := readTrailer(r, size)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	streams := make(map[string]*StreamMeta)
	for k := range meta.Streams {
		streams[meta.Streams[k].Path] = &meta.Streams[k]
	}
	logger.Debug("opened stream object",
		zap.String("id", meta.ID),
		zap.String("type", meta.Type),
		zap.Int64("data_size", dataSize))
	return &Reader{
		reader:  io.NewSectionReader(r, 0, dataSize),
		opts:    opts,
		logger:  logger,
		meta:    meta,
		streams: streams,
		readers: make(map[string]*streamReader),
	}, nil
}

func (r *Reader) Metadata() Metadata {
	return *r.meta
}

// Input returns the reader for the stream at path or nil if the object
// has no such stream or the path is skipped.  Repeated calls for a path
// return the same reader, which continues where the previous call left
// off.  The returned reader also implements io.ByteReader.
func (r *Reader) Input(path zcol.Path) io.Reader {
	if skipped(r.opts.Skip, path) {
		return nil
	}
	key := path.String()
	if s, ok := r.readers[key]; ok {
		return s
	}
	meta, ok := r.streams[key]
	if !ok {
		return nil
	}
	s := &streamReader{parent: r, meta: meta}
	r.readers[key] = s
	return s
}

type streamReader struct {
	parent  *Reader
	meta    *StreamMeta
	next    int
	buf     []byte
	scratch []byte
}

func (s *streamReader) fill() error {
	for len(s.buf) == 0 {
		if s.next >= len(s.meta.Segments) {
			return io.EOF
		}
		seg := s.meta.Segments[s.next]
		b, err := seg.load(s.parent.reader, s.scratch)
		if err != nil {
			return err
		}
		if seg.CompressionFormat == CompressionFormatLZ4 {
			s.scratch = b
		}
		s.next++
		s.buf = b
		s.parent.opts.Metrics.segmentRead()
		s.parent.logger.Debug("loaded segment",
			zap.String("path", s.meta.Path),
			zap.Int64("offset", seg.Offset),
			zap.Int32("mem_length", seg.MemLength))
	}
	return nil
}

func (s *streamReader) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	if err := s.fill(); err != nil {
		return 0, err
	}
	n := copy(b, s.buf)
	s.buf = s.buf[n:]
	s.parent.opts.Metrics.read(s.meta.Path, n)
	return n, nil
}

func (s *streamReader) ReadByte() (byte, error) {
	if err := s.fill(); err != nil {
		return 0, err
	}
	c := s.buf[0]
	s.buf = s.buf[1:]
	s.parent.opts.Metrics.read(s.meta.Path, 1)
	return c, nil
}
