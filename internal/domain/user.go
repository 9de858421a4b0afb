package domain

import "time"

// User is the account record. IsStaff is never client-settable; IsSeller is
// chosen at registration and read-only afterwards.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:254;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	IsSeller     bool      `gorm:"not null;default:false" json:"is_seller"`
	IsStaff      bool      `gorm:"not null;default:false" json:"is_staff"`
	PhoneNumber  string    `gorm:"size:15" json:"phone_number"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
