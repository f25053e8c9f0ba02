package models

// User roles. A plain enum column rather than a lookup table: the
// marketplace only distinguishes admins from everyone else.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
