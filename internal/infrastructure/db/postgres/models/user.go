package models

import "time"

// User is the persisted identity row. Uniqueness of username and email is a
// database constraint, not an application-level promise.
type User struct {
	ID             string    `gorm:"type:uuid;primaryKey"`
	Username       string    `gorm:"type:text;uniqueIndex;not null"`
	Email          string    `gorm:"type:text;uniqueIndex;not null"`
	PasswordDigest string    `gorm:"type:text;not null"`
	Role           string    `gorm:"type:text;not null;default:'user'"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName pins the table to the original schema name.
func (User) TableName() string {
	return "users"
}
