package models

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

// CanModerate reports whether the role is exempt from ownership filters on
// reads and deletes of shared resources. Rating creation is never exempt.
func (r Role) CanModerate() bool {
	return r == RoleAdmin || r == RoleModerator
}

type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     []byte    `json:"-"`
	Role             Role      `json:"role"`
	Confirmed        bool      `json:"confirmed"`
	Banned           bool      `json:"banned"`
	AvatarURL        *string   `json:"avatarUrl,omitempty"`
	RefreshTokenHash []byte    `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
