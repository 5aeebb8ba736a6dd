package user

import "errors"

// Role keys gate access to the three API surfaces.
const (
	RoleWarehouse = "warehouse"
	RoleOffice    = "office"
	RoleAdmin     = "admin"
)

var ErrNotFound = errors.New("user: user not found")

type User struct {
	ID       uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Username string `gorm:"column:username;size:64;not null;uniqueIndex:ux_users_username"`
	Password string `gorm:"column:password;size:128;not null"`
	Role     string `gorm:"column:role;size:16;not null"`
}

func (User) TableName() string { return "users" }

// KnownRole reports whether r is one of the role keys the API understands.
func KnownRole(r string) bool {
	switch r {
	case RoleWarehouse, RoleOffice, RoleAdmin:
		return true
	}
	return false
}
