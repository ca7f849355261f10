package usecases

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/orris-inc/subhub/internal/domain/node"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

// LinkSet is the ordered list of proxy links sent for conversion.
type LinkSet []string

// Empty reports whether the user has no enabled links.
func (s LinkSet) Empty() bool { return len(s) == 0 }

// Fingerprint is a hex sha256 over the links in order.
func (s LinkSet) Fingerprint() string {
	sum := sha256.Sum256([]byte(strings.Join(s, "\n")))
	return hex.EncodeToString(sum[:])
}

// LinkCollector gathers a user's enabled node client links.
type LinkCollector struct {
	repo   node.NodeClientRepository
	logger logger.Interface
}

func NewLinkCollector(repo node.NodeClientRepository, logger logger.Interface) *LinkCollector {
	return &LinkCollector{
		repo:   repo,
		logger: logger,
	}
}

// CollectLinks returns the user's enabled links ordered by preference, then
// node client id. No enabled links is an empty set, not an error.
func (c *LinkCollector) CollectLinks(ctx context.Context, userID string) (LinkSet, error) {
	links, err := c.repo.ListEnabledLinksByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to collect links: %w", err)
	}

	node.SortUserLinks(links)

	set := make(LinkSet, 0, len(links))
	for _, l := range links {
		url := strings.TrimSpace(l.URL)
		if url == "" {
			c.logger.Warnw("skipping node client with empty url",
				"user_id", userID,
				"node_client_id", l.NodeClientID,
			)
			continue
		}
		set = append(set, url)
	}
	return set, nil
}
