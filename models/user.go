// Description: Defines the User model and its fields.
package models

import (
	"fmt"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model         // Adds fields ID, CreatedAt, UpdatedAt, DeletedAt
	Email       string `json:"email" gorm:"uniqueIndex;not null"`
	Password    string `json:"-"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	IsVerified  bool   `json:"is_verified"`
	IsStaff     bool   `json:"is_staff"`
}

// IsAdmin reports whether the user may perform staff-only actions.
// All admins are staff.
func (u *User) IsAdmin() bool {
	return u.IsStaff
}

func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}
