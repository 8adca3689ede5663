package models

import "time"

// User represents a registered account. Email is stored lowercased and is
// unique; the password hash is never serialized.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null" validate:"required"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
