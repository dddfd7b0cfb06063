package models

import "gorm.io/gorm"

// Role is the closed set of account roles. Stored as a string column but
// never compared as a raw string outside this package and app/authz.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// Privileged reports whether r is seller or admin.
func (r Role) Privileged() bool {
	return r == RoleSeller || r == RoleAdmin
}

// User is the primary account model.
type User struct {
	gorm.Model
	Username  string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email     string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"` // hashed, never serialised
	FirstName string `gorm:"size:150" json:"first_name"`
	LastName  string `gorm:"size:150" json:"last_name"`
	Phone     string `gorm:"size:15" json:"phone"`
	Role      Role   `gorm:"size:20;default:customer" json:"role"`
}

// FullName returns "First Last", falling back to the username when both
// name fields are empty.
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}

func (u *User) IsAdmin() bool    { return u.Role == RoleAdmin }
func (u *User) IsSeller() bool   { return u.Role == RoleSeller }
func (u *User) IsCustomer() bool { return u.Role == RoleCustomer }
