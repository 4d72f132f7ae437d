// Package codec implements the binary encodings of the scalar values held
// in dictionary columns.  Each codec has a bulk form, used for whole
// dictionaries and runs of indexes, and a single-value form.
//
// Bulk decoding reads up to the requested number of values and stops
// early, without error, at a clean end of stream.  A value cut short by
// the end of the stream is io.ErrUnexpectedEOF.
package codec

import (
	"encoding/binary"
	"errors"
	"io"
)

var ErrValueTooLong = errors.New("value exceeds fixed width")

type Codec[T comparable] interface {
	EncodeBulk(io.Writer, []T) error
	// DecodeBulk appends up to n values read from r to dst.
	DecodeBulk(r io.Reader, dst []T, n int) ([]T, error)
	Encode(io.Writer, T) error
	Decode(io.Reader) (T, error)
	// Parse and Format convert between values and their text form.
	Parse(string) (T, error)
	Format(T) string
	// Coerce converts a Go value into the codec's representation.
	Coerce(any) (T, error)
	// Value is the inverse of Coerce.
	Value(T) any
}

// KeyFunc returns a function that maps values of c to map keys that are
// equal exactly when the encoded values are equal, or nil if values of c
// already compare that way with ==.
func KeyFunc[T comparable](c Codec[T]) func(T) any {
	if k, ok := c.(interface{ KeyFunc() func(T) any }); ok {
		return k.KeyFunc()
	}
	return nil
}

func readByte(r io.Reader) (byte, error) {
	if br, ok := r.(io.ByteReader); ok {
		return br.ReadByte()
	}
	var b [1]byte
	_, err := io.ReadFull(r, b[:])
	return b[0], err
}

type byteReader struct {
	io.Reader
}

func (b byteReader) ReadByte() (byte, error) {
	return readByte(b.Reader)
}

// readUvarint reads a uvarint from r.  A stream that ends before the
// first byte returns io.EOF; one that ends mid-varint returns
// io.ErrUnexpectedEOF.
func readUvarint(r io.Reader) (uint64, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = byteReader{r}
	}
	return binary.ReadUvarint(br)
}

func writeUvarint(w io.Writer, u uint64) error {
	var b [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(b[:], u)
	_, err := w.Write(b[:n])
	return err
}

// readChunk bounds the number of bytes requested per read in readUpTo.
const readChunk = 64 * 1024

// readUpTo reads up to n bytes from r, stopping without error at the end
// of the stream.  The buffer grows with the bytes actually read, so a
// corrupt count costs no more memory than the data behind it.
func readUpTo(r io.Reader, n int) ([]byte, error) {
	var buf []byte
	for len(buf) < n {
		m := n - len(buf)
		if m > readChunk {
			m = readChunk
		}
		off := len(buf)
		buf = append(buf, make([]byte, m)...)
		cc, err := io.ReadFull(r, buf[off:])
		buf = buf[:off+cc]
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return buf, err
		}
	}
	return buf, nil
}

// noEOF converts io.EOF to io.ErrUnexpectedEOF for reads that are
// already part way through a value.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// WriteCount writes a dictionary element count as a fixed-width
// little-endian uint64.
func WriteCount(w io.Writer, n uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], n)
	_, err := w.Write(b[:])
	return err
}

func ReadCount(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
