package models

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Image references an externally hosted asset.
type Image struct {
	PublicID string `bson:"public_id" json:"public_id"`
	URL      string `bson:"url" json:"url"`
}

// User represents a registered customer or administrator.
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                 string             `bson:"name" json:"name"`
	Email                string             `bson:"email" json:"email"`
	Password             string             `bson:"password" json:"-"`
	PhoneNumber          string             `bson:"phone_number" json:"phone_number"`
	Avatar               Image              `bson:"avatar" json:"avatar"`
	Role                 string             `bson:"role" json:"role"`
	IsActive             bool               `bson:"is_active" json:"is_active"`
	ResetPasswordToken   string             `bson:"reset_password_token,omitempty" json:"-"`
	ResetPasswordExpires time.Time          `bson:"reset_password_expires,omitempty" json:"-"`
	CreatedAt            time.Time          `bson:"created_at" json:"created_at"`
}

// Validate checks the schema constraints enforced at insert time. The
// password is validated in its plaintext form, before hashing.
func (u *User) Validate(plainPassword string) error {
	var messages []string

	if u.Name == "" {
		messages = append(messages, "Please enter your name")
	}
	if len(u.Name) > 30 {
		messages = append(messages, "Name can not exceed 30 characters")
	}
	if u.Email == "" {
		messages = append(messages, "Please enter your email")
	} else if !emailPattern.MatchString(u.Email) {
		messages = append(messages, "Please enter a valid email")
	}
	if plainPassword == "" {
		messages = append(messages, "Please enter your password")
	} else if len(plainPassword) < 6 {
		messages = append(messages, "Password must be at least 6 characters")
	}
	if u.PhoneNumber == "" {
		messages = append(messages, "Please enter your phone number")
	} else if len(u.PhoneNumber) < 10 {
		messages = append(messages, "Please enter a valid phone number")
	}
	if u.Role != RoleUser && u.Role != RoleAdmin {
		messages = append(messages, "Please select a valid role")
	}

	return newValidationError(messages)
}
