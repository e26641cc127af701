package domain

// Role is a capability a User carries in the marketplace.
type Role string

const (
	RoleTutor     Role = "TUTOR"
	RoleStudent   Role = "STUDENT"
	RoleAdmin     Role = "ADMIN"
	RoleModerator Role = "MODERATOR"
)

// User is the actor identity the engine reasons about. Profile data,
// credentials and catalog membership live outside this repository.
type User struct {
	ID    int64
	Name  string
	Roles []Role
}

// HasRole reports whether u carries role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsTutor reports whether u carries the TUTOR role.
func (u *User) IsTutor() bool {
	return u.HasRole(RoleTutor)
}
