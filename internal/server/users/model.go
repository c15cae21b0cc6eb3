package users

import "time"

// Role is the authorization role assigned to a user at creation time.
type Role string

const (
	RoleStandard      Role = "standard"
	RoleAdministrator Role = "administrator"
)

// User is an identity known to the service. PasswordHash holds the argon2id
// encoding of the password; it is never serialized and never logged.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdministrator reports whether the user carries the administrator role.
func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}

// Patch describes a partial update of a user. Nil fields are left unchanged.
type Patch struct {
	Username *string
	Password *string
}
