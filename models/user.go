package models

import (
	"time"

	"gorm.io/gorm"
)

type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderUnspecified Gender = "unspecified"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnspecified:
		return true
	}
	return false
}

type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string  `gorm:"uniqueIndex;not null" json:"username"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Profile      Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile"`
	Orders       []Order `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is created alongside the user and lives exactly as long as it does.
type Profile struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID    uint   `gorm:"uniqueIndex;not null" json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	City      string `json:"city"`
	Gender    Gender `gorm:"type:VARCHAR(20);default:'unspecified'" json:"gender"`
	Avatar    string `json:"avatar"`
	UpdatedAt time.Time `json:"-"`
}

// AfterCreate keeps the 1:1 profile lifecycle: every new user gets an empty
// profile in the same transaction.
func (u *User) AfterCreate(tx *gorm.DB) error {
	if u.Profile.ID != 0 {
		return nil
	}
	profile := Profile{UserID: u.ID, Gender: GenderUnspecified}
	if err := tx.Create(&profile).Error; err != nil {
		return err
	}
	u.Profile = profile
	return nil
}
