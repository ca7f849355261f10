package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/subhub/internal/shared/constants"
)

// UserModel represents the database persistence model for users
type UserModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	Name            string    `gorm:"not null;size:100"`
	SubscriptionKey string    `gorm:"not null;size:64;uniqueIndex"`
	SubconverterID  *string   `gorm:"type:varchar(36);index"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}

// BeforeCreate hook for GORM
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = newID()
	}
	return nil
}
