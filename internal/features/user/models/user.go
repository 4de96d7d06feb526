package models

import "time"

// UserType is the platform privilege level carried by the session.
type UserType string

const (
	UserTypeUser    UserType = "USER"
	UserTypeCreator UserType = "CREATOR"
	UserTypeAdmin   UserType = "ADMIN"
	UserTypeMaster  UserType = "MASTER"
)

// CanManageGiveaways reports whether the user may create or edit giveaways.
func (t UserType) CanManageGiveaways() bool {
	switch t {
	case UserTypeCreator, UserTypeAdmin, UserTypeMaster:
		return true
	}
	return false
}

type User struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Type      UserType  `gorm:"size:16;not null;default:USER" json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Session is the authenticated caller of a request.
type Session struct {
	UserID string
	Type   UserType
}
