package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/subhub/internal/shared/constants"
)

// ClashConfigModel stores an override profile. Key is stored as config_key
// because KEY is reserved in MySQL.
type ClashConfigModel struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)"`
	Key          string    `gorm:"column:config_key;not null;size:50;uniqueIndex"`
	Name         string    `gorm:"not null;size:100"`
	GlobalConfig *string   `gorm:"type:text"`
	Rules        *string   `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (ClashConfigModel) TableName() string {
	return constants.TableClashConfigs
}

func (m *ClashConfigModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}
