// File: internal/model/user.go
package model

import "time"

// 角色列舉，僅允許 user 與 admin
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"password_hash"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// IsAdmin 回報使用者是否具管理員角色
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
