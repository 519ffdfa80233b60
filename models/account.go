package models

import "time"

// Account is the tenancy boundary for all document operations. Credentials
// and sessions live in the external identity provider; only the premium flag
// and login bookkeeping are kept here.
type Account struct {
	ID          string     `gorm:"type:varchar(64);primaryKey" json:"id"`
	Username    string     `gorm:"type:varchar(256);uniqueIndex;not null" json:"username"`
	IsPremium   bool       `gorm:"default:false;index" json:"is_premium"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
