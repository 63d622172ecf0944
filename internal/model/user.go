package model

import "time"

// User represents a registered member of the board.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Firstname    string    `json:"firstname" gorm:"size:255;not null"`
	Lastname     string    `json:"lastname" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	MobilePhone  *string   `json:"mobilePhone,omitempty" gorm:"size:32"`
	Country      *string   `json:"country,omitempty" gorm:"size:255"`
	City         *string   `json:"city,omitempty" gorm:"size:255"`
	Address      *string   `json:"address,omitempty" gorm:"size:255"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
