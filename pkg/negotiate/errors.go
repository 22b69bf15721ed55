package negotiate

import "errors"

var (
	ErrInvalidJSON = errors.New("failed to parse JSON request body")
	ErrInvalidForm = errors.New("failed to parse form data")
)
