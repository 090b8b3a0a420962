package prefix

import "github.com/pkg/errors"

var (
	// ErrInvalidAddress is returned when text is not an address of the
	// requested family.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidLength is returned when a prefix length does not fit the
	// address width.
	ErrInvalidLength = errors.New("invalid prefix length")
)
