package entity

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// UserRole maps an opaque user id to its role. Users without a row default
// to MEMBER.
type UserRole struct {
	UserID string `db:"user_id"`
	Role   Role   `db:"role"`
}
