package model

import "time"

const RoleAdmin = "admin"
const RoleEmployee = "employee"

// User is the identity record. PasswordHash never leaves the service
// layer; handlers expose only id/username/role shapes.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	FirstName    string    `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName     string    `bson:"last_name,omitempty" json:"last_name,omitempty"`
	IsStaff      bool      `bson:"is_staff" json:"is_staff"`
	CreateTime   time.Time `bson:"create_time" json:"-"`
}

func (u *User) Role() string {
	if u.IsStaff {
		return RoleAdmin
	}
	return RoleEmployee
}

// DisplayName mirrors the original attendance serializer: full name when
// both parts are set, username otherwise.
func (u *User) DisplayName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}
