package inventory

import "errors"

var (
	ErrMissingColumn = errors.New("missing column")
	ErrInvalidValue  = errors.New("invalid column value")
	ErrMissingField  = errors.New("required field is empty")
)
