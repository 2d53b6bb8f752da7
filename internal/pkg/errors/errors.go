package errors

import "errors"

var (
	ErrInvalid  = errors.New("invalid")
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal")
)

func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}
