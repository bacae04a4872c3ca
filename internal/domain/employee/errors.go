package employee

import "errors"

var (
	ErrInvalidToken        = errors.New("invalid or missing token")
	ErrHRAccessRequired    = errors.New("hr access required")
	ErrAdminAccessRequired = errors.New("admin access required")
)
