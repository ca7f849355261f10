package node

import (
	"context"
	"sort"
)

// UserLink is a node client link enabled for one user, with that user's
// ordering preference.
type UserLink struct {
	NodeClientID string
	NodeID       string
	URL          string
	Order        int
}

// SortUserLinks orders links by Order ascending, breaking ties by
// NodeClientID so the result is reproducible.
func SortUserLinks(links []*UserLink) {
	sort.SliceStable(links, func(i, j int) bool {
		if links[i].Order != links[j].Order {
			return links[i].Order < links[j].Order
		}
		return links[i].NodeClientID < links[j].NodeClientID
	})
}

// NodeClientRepository reads node client links.
type NodeClientRepository interface {
	// ListEnabledLinksByUser returns the clients the user has enabled, ordered
	// by option order then node client id. No rows is an empty slice.
	ListEnabledLinksByUser(ctx context.Context, userID string) ([]*UserLink, error)
}
