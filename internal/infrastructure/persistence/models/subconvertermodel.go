package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/subhub/internal/shared/constants"
)

// SubconverterModel is a registered conversion service instance.
type SubconverterModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	URL       string    `gorm:"column:url;not null;size:500"`
	Options   string    `gorm:"type:text"`
	IsDefault bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (SubconverterModel) TableName() string {
	return constants.TableSubconverters
}

func (m *SubconverterModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}
