package types

import "errors"

var (
	ErrDuplicateMember = errors.New("duplicate member")
	ErrDuplicateType   = errors.New("duplicate type name")
	ErrUnknownType     = errors.New("unknown type")
)
