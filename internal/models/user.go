package models

import "strings"

// User represents an account allowed to log in
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Login        string `gorm:"column:usuario;uniqueIndex;not null" json:"login"`
	DisplayName  string `gorm:"column:nome_exibicao;not null" json:"display_name"`
	PasswordHash string `gorm:"column:senha_hash;not null" json:"-"`
	Role         string `gorm:"column:perfil;not null" json:"role"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "usuarios"
}

// Role constants
const (
	RoleAdmin    = "admin"
	RoleOperator = "digitador"
)

// NormalizeRole maps user input to a role constant. It returns "" for
// anything that is not a known role.
func NormalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleAdmin:
		return RoleAdmin
	case RoleOperator, "operator":
		return RoleOperator
	}
	return ""
}

// IsAdmin returns true if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Identity returns the session identity for the user
func (u *User) Identity() *Identity {
	return &Identity{
		UserID:      u.ID,
		Login:       u.Login,
		DisplayName: u.DisplayName,
		Role:        u.Role,
	}
}

// Identity is the authenticated caller. It lives for the duration of a
// session token and is passed explicitly to every operation that needs it.
type Identity struct {
	UserID      uint   `json:"id"`
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	TokenID     string `json:"-"`
}

// IsAdmin returns true if the identity has admin role
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
