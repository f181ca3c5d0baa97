package domain

// Role роль актора, которую проставляет внешний слой аутентификации
type Role string

const (
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
	RoleUser  Role = "user"
)

// IsValid returns true for known roles
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleOwner || r == RoleUser
}

// Actor identity object {userId, role}
type Actor struct {
	UserID int64
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsOwner() bool {
	return a.Role == RoleOwner
}
