package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName           string         `json:"firstName"`
	LastName            string         `json:"lastName"`
	Email               string         `json:"email" gorm:"uniqueIndex"`
	Password            string         `json:"-"`
	PhoneNumber         string         `json:"phoneNumber"`
	AvatarURL           string         `json:"avatarURL"`
	Listings            []Listing      `json:"listings,omitempty" gorm:"foreignKey:HostID;references:ID"`
	PushTokens          datatypes.JSON `json:"pushTokens"` // JSON array of Expo push tokens
	AllowsNotifications *bool          `json:"allowsNotifications"`
	Role                string         `json:"role" gorm:"type:varchar(20);default:user;index"` // user, host, admin, super_admin
}

// FullName is the display name used in notifications and lease documents.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
