package user

import "errors"

var (
	ErrSessionRequired         = errors.New("login required")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrOutOfScope              = errors.New("access restricted to your own records")
)
