package ports

import (
	"context"

	"sportspack/internal/domain"
)

// TreeStore provides read and write access to the node forest.
// The core never assumes how nodes are persisted.
type TreeStore interface {
	// GetNode returns the node or (nil, nil) when it does not exist
	GetNode(ctx context.Context, id string) (*domain.Node, error)

	// GetChildren returns the Container children of parentID in no
	// particular order. Callers needing stable order must sort.
	GetChildren(ctx context.Context, parentID string) ([]*domain.Node, error)

	// CreateNode inserts node under parentID (empty for a root) and
	// returns the new ID. node.ID and node.ParentID are ignored.
	CreateNode(ctx context.Context, parentID string, node *domain.Node) (string, error)

	// UpdateNode applies a partial update to an existing node
	UpdateNode(ctx context.Context, id string, update domain.NodeUpdate) error
}

// TreeLister is implemented by stores that can enumerate root nodes
type TreeLister interface {
	Roots(ctx context.Context) ([]*domain.Node, error)
}
