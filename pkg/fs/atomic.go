// Package fs provides file helpers for the local storage engine.
package fs

import (
	"errors"
	"os"
	"path/filepath"
)

var ErrAborted = errors.New("atomic write aborted")

// AtomicWriter writes to a temporary file beside its target and renames
// it into place on Close, so readers never observe a partial file.
// Either Close or Abort must be called; Abort leaves any existing target
// unmodified.
type AtomicWriter struct {
	f        *os.File
	err      error
	filename string
	perm     os.FileMode
	done     bool
}

func NewAtomicWriter(filename string, perm os.FileMode) (*AtomicWriter, error) {
	filename, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(filepath.Dir(filename), ".tmp-"+filepath.Base(filename))
	if err != nil {
		return nil, err
	}
	return &AtomicWriter{
		f:        f,
		filename: filename,
		perm:     perm,
	}, nil
}

func (a *AtomicWriter) Write(b []byte) (int, error) {
	n, err := a.f.Write(b)
	if err != nil {
		a.err = err
	}
	return n, err
}

func (a *AtomicWriter) Abort() {
	if a.err == nil {
		a.err = ErrAborted
	}
	_ = a.close()
}

func (a *AtomicWriter) Close() error {
	return a.close()
}

func (a *AtomicWriter) close() (err error) {
	if a.done {
		return nil
	}
	a.done = true
	defer func() {
		if err != nil {
			os.Remove(a.f.Name())
		}
	}()
	if err := a.f.Close(); err != nil {
		return err
	}
	if a.err != nil {
		return a.err
	}
	if err := os.Chmod(a.f.Name(), a.perm); err != nil {
		return err
	}
	return os.Rename(a.f.Name(), a.filename)
}
