package stream

import (
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"golang.org/x/exp/slices"
)

type CompressionFormat uint8

const (
	CompressionFormatNone CompressionFormat = 0
	CompressionFormatLZ4  CompressionFormat = 1
)

func (c CompressionFormat) String() string {
	switch c {
	case CompressionFormatNone:
		return "none"
	case CompressionFormatLZ4:
		return "lz4"
	}
	return fmt.Sprintf("CompressionFormat(%d)", c)
}

// A Segment locates one stored block of a stream in the data section.
// Length is the stored size and MemLength the size after decompression.
type Segment struct {
	Offset            int64             `yaml:"offset"`
	Length            int32             `yaml:"length"`
	MemLength         int32             `yaml:"mem_length"`
	CompressionFormat CompressionFormat `yaml:"compression"`
}

// compress returns b compressed with c, or b itself when compression
// does not save space.
func compress(c *lz4.Compressor, buf *[]byte, b []byte) ([]byte, CompressionFormat, error) {
	contentLen := len(b)
	if contentLen <= 1 {
		return b, CompressionFormatNone, nil
	}
	// Use contentLen-1 so compression will fail if it doesn't result in
	// fewer bytes.
	*buf = slices.Grow((*buf)[:0], contentLen-1)[:contentLen-1]
	zlen, err := c.CompressBlock(b, *buf)
	if err != nil && err != lz4.ErrInvalidSourceShortBuffer {
		return nil, 0, err
	}
	if zlen > 0 {
		return (*buf)[:zlen], CompressionFormatLZ4, nil
	}
	return b, CompressionFormatNone, nil
}

// Spiller appends blocks to the data section and tracks their offsets.
type Spiller struct {
	writer   io.Writer
	compress bool

	buf        []byte
	compressor lz4.Compressor
	off        int64
}

func NewSpiller(w io.Writer, compress bool) *Spiller {
	return &Spiller{
		writer:   w,
		compress: compress,
	}
}

func (s *Spiller) Position() int64 {
	return s.off
}

// Write compresses b when enabled and appends it as a new segment.
func (s *Spiller) Write(segments []Segment, b []byte) ([]Segment, error) {
	block, cf := b, CompressionFormatNone
	if s.compress {
		var err error
		block, cf, err = compress(&s.compressor, &s.buf, b)
		if err != nil {
			return nil, err
		}
	}
	return s.WriteBlock(segments, block, len(b), cf)
}

// WriteBlock appends a block that has already been compressed with cf.
func (s *Spiller) WriteBlock(segments []Segment, block []byte, memLen int, cf CompressionFormat) ([]Segment, error) {
	if _, err := s.writer.Write(block); err != nil {
		return nil, err
	}
	segment := Segment{s.off, int32(len(block)), int32(memLen), cf}
	s.off += int64(len(block))
	return append(segments, segment), nil
}

// load reads and decompresses the segment from r.
func (s Segment) load(r io.ReaderAt, dst []byte) ([]byte, error) {
	if s.Length < 0 || s.MemLength < 0 {
		return nil, fmt.Errorf("corrupt segment at offset %d: negative length", s.Offset)
	}
	block := make([]byte, s.Length)
	if _, err := r.ReadAt(block, s.Offset); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch s.CompressionFormat {
	case CompressionFormatNone:
		if s.Length != s.MemLength {
			return nil, fmt.Errorf("corrupt segment at offset %d: length %d, memory length %d", s.Offset, s.Length, s.MemLength)
		}
		return block, nil
	case CompressionFormatLZ4:
		dst = slices.Grow(dst[:0], int(s.MemLength))[:s.MemLength]
		n, err := lz4.UncompressBlock(block, dst)
		if err != nil {
			return nil, fmt.Errorf("segment at offset %d: %w", s.Offset, err)
		}
		if n != int(s.MemLength) {
			return nil, fmt.Errorf("segment at offset %d: decompressed %d bytes, expected %d", s.Offset, n, s.MemLength)
		}
		return dst, nil
	}
	return nil, fmt.Errorf("segment at offset %d: unknown compression format %s", s.Offset, s.CompressionFormat)
}
