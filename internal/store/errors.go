package store

import "errors"

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrAmbiguousID         = errors.New("run id prefix matches more than one run")
	ErrConstraintViolation = errors.New("database constraint violation")
)
