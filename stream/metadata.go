package stream

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/brimdata/zcol"
	"github.com/segmentio/ksuid"
	"gopkg.in/yaml.v3"
)

// An object is laid out as the data section holding every segment, then
// the YAML metadata section, then a fixed-size footer.
const (
	Magic      = "ZCOL"
	Version    = 1
	FooterSize = 16

	// MaxMetaSize bounds the metadata section accepted by the reader.
	MaxMetaSize = 64 * 1024 * 1024
)

var ErrNotObject = errors.New("not a zcol stream object")

type Metadata struct {
	ID      string       `yaml:"id"`
	Type    string       `yaml:"type"`
	Rows    int          `yaml:"rows"`
	Streams []StreamMeta `yaml:"streams"`
}

type StreamMeta struct {
	Path     string    `yaml:"path"`
	Segments []Segment `yaml:"segments"`
}

// Size returns the decompressed length of the stream.
func (s StreamMeta) Size() int64 {
	var n int64
	for _, seg := range s.Segments {
		n += int64(seg.MemLength)
	}
	return n
}

type footer struct {
	Magic    [4]byte
	Version  uint32
	MetaSize uint64
}

func writeTrailer(w io.Writer, meta *Metadata) (int, error) {
	b, err := yaml.Marshal(meta)
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(b); err != nil {
		return 0, err
	}
	f := footer{Version: Version, MetaSize: uint64(len(b))}
	copy(f.Magic[:], Magic)
	if err := binary.Write(w, binary.LittleEndian, f); err != nil {
		return 0, err
	}
	return len(b) + FooterSize, nil
}

// readTrailer returns the metadata of the object in r and the size of
// its data section.
func readTrailer(r io.ReaderAt, size int64) (*Metadata, int64, error) {
	if size < FooterSize {
		return nil, 0, fmt.Errorf("%w: size %d too small", ErrNotObject, size)
	}
	var f footer
	if err := binary.Read(io.NewSectionReader(r, size-FooterSize, FooterSize), binary.LittleEndian, &f); err != nil {
		return nil, 0, err
	}
	if string(f.Magic[:]) != Magic {
		return nil, 0, fmt.Errorf("%w: bad magic %q", ErrNotObject, f.Magic[:])
	}
	if f.Version != Version {
		return nil, 0, fmt.Errorf("stream object version %d found while expecting version %d", f.Version, Version)
	}
	if f.MetaSize > MaxMetaSize || int64(f.MetaSize) > size-FooterSize {
		return nil, 0, fmt.Errorf("%w: metadata size %d out of range", ErrNotObject, f.MetaSize)
	}
	dataSize := size - FooterSize - int64(f.MetaSize)
	b := make([]byte, f.MetaSize)
	if _, err := r.ReadAt(b, dataSize); err != nil && err != io.EOF {
		return nil, 0, err
	}
	var meta Metadata
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&meta); err != nil {
		return nil, 0, fmt.Errorf("stream object metadata: %w", err)
	}
	if err := meta.validate(dataSize); err != nil {
		return nil, 0, err
	}
	return &meta, dataSize, nil
}

func (m *Metadata) validate(dataSize int64) error {
	if _, err := ksuid.Parse(m.ID); err != nil {
		return fmt.Errorf("stream object id %q: %w", m.ID, err)
	}
	if m.Rows < 0 {
		return fmt.Errorf("stream object has negative row count %d", m.Rows)
	}
	seen := make(map[string]struct{})
	for _, s := range m.Streams {
		if _, err := zcol.ParsePath(s.Path); err != nil {
			return err
		}
		if _, ok := seen[s.Path]; ok {
			return fmt.Errorf("stream %s appears more than once", s.Path)
		}
		seen[s.Path] = struct{}{}
		for _, seg := range s.Segments {
			if seg.Offset < 0 || seg.Length < 0 || seg.Offset+int64(seg.Length) > dataSize {
				return fmt.Errorf("stream %s: segment at offset %d outside data section", s.Path, seg.Offset)
			}
		}
	}
	return nil
}
