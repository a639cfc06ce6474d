package model

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User domain object defining a user. The password hash never leaves the
// process, session tokens live in redis and are never part of the record.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"index;unique" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"not null;default:user" json:"role"`
}

func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdmin
}
