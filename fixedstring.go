package zcol

import (
	"fmt"
)

// MaxFixedStringWidth bounds the width of a FixedString type.
const MaxFixedStringWidth = 1 << 20

// TypeFixedString is a string type whose values all occupy exactly
// Width bytes.
type TypeFixedString struct {
	Width int
}

func NewTypeFixedString(width int) (*TypeFixedString, error) {
	if width <= 0 || width > MaxFixedStringWidth {
		return nil, fmt.Errorf("FixedString width %d out of range (1..%d)", width, MaxFixedStringWidth)
	}
	return &TypeFixedString{Width: width}, nil
}

func (t *TypeFixedString) ID() int {
	return IDFixedString
}

func (t *TypeFixedString) String() string {
	return fmt.Sprintf("FixedString(%d)", t.Width)
}

func (t *TypeFixedString) Equal(u Type) bool {
	other, ok := u.(*TypeFixedString)
	return ok && t.Width == other.Width
}
