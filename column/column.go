package column

// Column is the minimal view shared by every column value.  Operations
// that require a particular kind of column type-assert to it.
type Column interface {
	// Len returns the number of rows.
	Len() int
}
