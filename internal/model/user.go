package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role is the access level assigned to an account.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// User represents a registered account. The email is unique across the
// collection and is always stored lowercased and trimmed.
type User struct {
	ID               bson.ObjectID `bson:"_id,omitempty"`
	FirstName        string        `bson:"first_name"`
	LastName         string        `bson:"last_name"`
	Birthday         time.Time     `bson:"birthday"`
	Gender           string        `bson:"gender"`
	Location         string        `bson:"location"`
	Email            string        `bson:"email"`
	PasswordHash     string        `bson:"password_hash"`
	Role             Role          `bson:"role"`
	Verified         bool          `bson:"verified"`
	VerificationCode string        `bson:"verification_code,omitempty"`
	ProfilePicture   string        `bson:"profile_picture,omitempty"`
	CreatedAt        time.Time     `bson:"created_at"`
	UpdatedAt        time.Time     `bson:"updated_at"`
}
