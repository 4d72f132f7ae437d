package codec

import (
	"fmt"
	"io"
	"strings"
)

// MaxStringLen bounds the length of a decoded string so that a corrupt
// length prefix cannot trigger an enormous allocation.
const MaxStringLen = 1 << 30

// String encodes each value as a uvarint length followed by its bytes.
type String struct{}

var Strings = &String{}

func (*String) EncodeBulk(w io.Writer, vals []string) error {
	for _, v := range vals {
		if err := Strings.Encode(w, v); err != nil {
			return err
		}
	}
	return nil
}

func (*String) DecodeBulk(r io.Reader, dst []string, n int) ([]string, error) {
	for k := 0; k < n; k++ {
		s, err := Strings.Decode(r)
		if err != nil {
			if err == io.EOF {
				break
			}
			return dst, err
		}
		dst = append(dst, s)
	}
	return dst, nil
}

func (*String) Encode(w io.Writer, v string) error {
	if err := writeUvarint(w, uint64(len(v))); err != nil {
		return err
	}
	_, err := io.WriteString(w, v)
	return err
}

func (*String) Decode(r io.Reader) (string, error) {
	n, err := readUvarint(r)
	if err != nil {
		return "", err
	}
	if n > MaxStringLen {
		return "", fmt.Errorf("string length %d too large", n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", noEOF(err)
	}
	return string(b), nil
}

func (*String) Parse(s string) (string, error) {
	return s, nil
}

func (*String) Format(v string) string {
	return v
}

func (*String) Coerce(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	return "", fmt.Errorf("cannot convert %T to string", v)
}

func (*String) Value(v string) any {
	return v
}

// FixedString encodes each value as exactly Width bytes.  Values are
// zero-padded to the width when coerced or parsed.
type FixedString struct {
	Width int
}

func NewFixedString(width int) *FixedString {
	return &FixedString{Width: width}
}

func (f *FixedString) EncodeBulk(w io.Writer, vals []string) error {
	for _, v := range vals {
		if err := f.Encode(w, v); err != nil {
			return err
		}
	}
	return nil
}

func (f *FixedString) DecodeBulk(r io.Reader, dst []string, n int) ([]string, error) {
	for k := 0; k < n; k++ {
		s, err := f.Decode(r)
		if err != nil {
			if err == io.EOF {
				break
			}
			return dst, err
		}
		dst = append(dst, s)
	}
	return dst, nil
}

func (f *FixedString) Encode(w io.Writer, v string) error {
	if len(v) != f.Width {
		return fmt.Errorf("fixed string of width %d has length %d", f.Width, len(v))
	}
	_, err := io.WriteString(w, v)
	return err
}

func (f *FixedString) Decode(r io.Reader) (string, error) {
	b := make([]byte, f.Width)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func (f *FixedString) pad(s string) (string, error) {
	if len(s) > f.Width {
		return "", fmt.Errorf("%w: %q is longer than %d bytes", ErrValueTooLong, s, f.Width)
	}
	if len(s) < f.Width {
		s += strings.Repeat("\x00", f.Width-len(s))
	}
	return s, nil
}

func (f *FixedString) Parse(s string) (string, error) {
	return f.pad(s)
}

// Format trims the zero padding.
func (f *FixedString) Format(v string) string {
	return strings.TrimRight(v, "\x00")
}

func (f *FixedString) Coerce(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return f.pad(v)
	case []byte:
		return f.pad(string(v))
	}
	return "", fmt.Errorf("cannot convert %T to FixedString(%d)", v, f.Width)
}

func (f *FixedString) Value(v string) any {
	return v
}
