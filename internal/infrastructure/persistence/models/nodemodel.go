package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/subhub/internal/shared/constants"
)

// NodeModel is an operator-registered proxy source.
type NodeModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Name      string    `gorm:"not null;size:100"`
	Type      string    `gorm:"not null;size:32;default:custom"`
	Host      *string   `gorm:"size:255"`
	AccessURL *string   `gorm:"column:access_url;size:500"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (NodeModel) TableName() string {
	return constants.TableNodes
}

// BeforeCreate hook for GORM
func (m *NodeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	if m.Type == "" {
		m.Type = "custom"
	}
	return nil
}

// NodeClientModel is a single proxy link belonging to a node.
type NodeClientModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	NodeID    string    `gorm:"not null;type:varchar(36);index:idx_node_clients_node_id"`
	URL       string    `gorm:"column:url;type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (NodeClientModel) TableName() string {
	return constants.TableNodeClients
}

func (m *NodeClientModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}

// UserClientOptionModel stores whether a user uses a node client and where
// it sits in that user's link order.
type UserClientOptionModel struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)"`
	UserID       string    `gorm:"not null;type:varchar(36);uniqueIndex:idx_user_client_option"`
	NodeClientID string    `gorm:"not null;type:varchar(36);uniqueIndex:idx_user_client_option"`
	Enable       bool      `gorm:"not null;default:false"`
	Order        int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (UserClientOptionModel) TableName() string {
	return constants.TableUserClientOptions
}

func (m *UserClientOptionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}
