package learning

import "errors"

var (
	ErrLogNotFound = errors.New("learning log not found")
)
