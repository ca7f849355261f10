package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/subhub/internal/domain/node"
	"github.com/orris-inc/subhub/internal/shared/constants"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

// NodeClientRepository implements node.NodeClientRepository
type NodeClientRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewNodeClientRepository creates a new NodeClientRepository
func NewNodeClientRepository(db *gorm.DB, logger logger.Interface) node.NodeClientRepository {
	return &NodeClientRepository{
		db:     db,
		logger: logger,
	}
}

type userLinkRow struct {
	NodeClientID string
	NodeID       string
	URL          string `gorm:"column:url"`
	SortOrder    int
}

// ListEnabledLinksByUser joins the user's enabled options with their clients
func (r *NodeClientRepository) ListEnabledLinksByUser(ctx context.Context, userID string) ([]*node.UserLink, error) {
	var rows []userLinkRow

	err := r.db.WithContext(ctx).
		Table(constants.TableUserClientOptions+" AS o").
		Select("c.id AS node_client_id, c.node_id AS node_id, c.url AS url, o.sort_order AS sort_order").
		Joins("JOIN "+constants.TableNodeClients+" AS c ON c.id = o.node_client_id").
		Where("o.user_id = ? AND o.enable = ?", userID, true).
		Order("o.sort_order ASC, c.id ASC").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list enabled links", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list enabled links: %w", err)
	}

	links := make([]*node.UserLink, 0, len(rows))
	for _, row := range rows {
		links = append(links, &node.UserLink{
			NodeClientID: row.NodeClientID,
			NodeID:       row.NodeID,
			URL:          row.URL,
			Order:        row.SortOrder,
		})
	}
	return links, nil
}
