package models

import (
	"time"
)

// User represents a registered author
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Username     string    `gorm:"type:varchar(150);not null;uniqueIndex:chirp_users_ux1;column:username"`
	PasswordHash string    `gorm:"type:varchar(60);not null;column:password_hash"`
	CreatedAt    time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "chirp_users"
}
