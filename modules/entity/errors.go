package entity

import "errors"

var (
	ErrNotFound    = errors.New("entity not found")
	ErrInvalidData = errors.New("invalid entity data")
)
