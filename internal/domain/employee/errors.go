package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmailExists       = errors.New("email already registered")
	ErrNotAnIntern       = errors.New("employee is not an intern")
	ErrInvalidImportFile = errors.New("invalid roster import file")
)
