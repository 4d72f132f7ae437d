package zcol

import (
	"fmt"
	"strings"
)

// A Substream identifies one of the physical streams a composite type
// occupies.  A Path of substreams locates a stream within nested types.
type Substream int

const (
	SubstreamDictionaryElements Substream = iota
	SubstreamDictionaryIndexes
	SubstreamNullMap
	SubstreamNullableElements
	SubstreamArraySizes
	SubstreamArrayElements
)

var substreamNames = []string{
	SubstreamDictionaryElements: "DictionaryElements",
	SubstreamDictionaryIndexes:  "DictionaryIndexes",
	SubstreamNullMap:            "NullMap",
	SubstreamNullableElements:   "NullableElements",
	SubstreamArraySizes:         "ArraySizes",
	SubstreamArrayElements:      "ArrayElements",
}

func (s Substream) String() string {
	if s < 0 || int(s) >= len(substreamNames) {
		return fmt.Sprintf("Substream(%d)", int(s))
	}
	return substreamNames[s]
}

func lookupSubstream(name string) (Substream, bool) {
	for k, s := range substreamNames {
		if s == name {
			return Substream(k), true
		}
	}
	return 0, false
}

type Path []Substream

// Append returns a new path with s added to the end.  The receiver is
// never modified.
func (p Path) Append(s Substream) Path {
	return append(p[:len(p):len(p)], s)
}

func (p Path) String() string {
	if len(p) == 0 {
		return "."
	}
	names := make([]string, 0, len(p))
	for _, s := range p {
		names = append(names, s.String())
	}
	return strings.Join(names, ".")
}

// ParsePath is the inverse of Path.String.
func ParsePath(s string) (Path, error) {
	if s == "." {
		return Path{}, nil
	}
	var path Path
	for _, name := range strings.Split(s, ".") {
		sub, ok := lookupSubstream(name)
		if !ok {
			return nil, fmt.Errorf("unknown substream %q in path %q", name, s)
		}
		path = append(path, sub)
	}
	return path, nil
}

// StreamVisitor is called once for each physical stream of a type.
type StreamVisitor func(Path)

// StreamEnumerator is implemented by types that occupy more than the
// single stream at their own path.
type StreamEnumerator interface {
	EnumerateStreams(StreamVisitor, Path)
}

// EnumerateStreams calls visit for each physical stream occupied by a
// column of type typ located at path.  No I/O is performed.
func EnumerateStreams(typ Type, visit StreamVisitor, path Path) {
	if e, ok := typ.(StreamEnumerator); ok {
		e.EnumerateStreams(visit, path)
		return
	}
	visit(path)
}

// Streams returns the paths visited by EnumerateStreams in order.
func Streams(typ Type) []Path {
	var paths []Path
	EnumerateStreams(typ, func(p Path) {
		paths = append(paths, append(Path(nil), p...))
	}, nil)
	return paths
}
