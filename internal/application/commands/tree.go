package commands

import (
	"context"
	"fmt"

	"sportspack/internal/domain"
	"sportspack/internal/ports"
)

// BuildTreeCommand loads the container forest
type BuildTreeCommand struct {
	store  ports.TreeStore
	lister ports.TreeLister
	RootID string
}

// NewBuildTreeCommand creates a new BuildTreeCommand. With an empty
// rootID every root container is loaded.
func NewBuildTreeCommand(store ports.TreeStore, lister ports.TreeLister, rootID string) *BuildTreeCommand {
	return &BuildTreeCommand{store: store, lister: lister, RootID: rootID}
}

// Execute builds the tree. Children are sorted by title, then ID.
func (c *BuildTreeCommand) Execute(ctx context.Context) ([]*domain.TreeNode, error) {
	var roots []*domain.Node
	if c.RootID != "" {
		root, err := c.store.GetNode(ctx, c.RootID)
		if err != nil {
			return nil, fmt.Errorf("failed to read node: %w", err)
		}
		if root == nil {
			return nil, nil
		}
		roots = []*domain.Node{root}
	} else {
		var err error
		roots, err = c.lister.Roots(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list roots: %w", err)
		}
		domain.SortNodes(roots)
	}

	forest := make([]*domain.TreeNode, 0, len(roots))
	for _, root := range roots {
		tn := &domain.TreeNode{Node: root}
		if err := c.loadChildren(ctx, tn, map[string]struct{}{root.ID: {}}); err != nil {
			return nil, err
		}
		forest = append(forest, tn)
	}
	return forest, nil
}

func (c *BuildTreeCommand) loadChildren(ctx context.Context, parent *domain.TreeNode, seen map[string]struct{}) error {
	children, err := c.store.GetChildren(ctx, parent.Node.ID)
	if err != nil {
		return fmt.Errorf("failed to list children of %s: %w", parent.Node.ID, err)
	}
	domain.SortNodes(children)

	for _, child := range children {
		if _, ok := seen[child.ID]; ok {
			continue
		}
		seen[child.ID] = struct{}{}

		tn := &domain.TreeNode{Node: child, Level: parent.Level + 1, Parent: parent}
		parent.Children = append(parent.Children, tn)
		if err := c.loadChildren(ctx, tn, seen); err != nil {
			return err
		}
	}
	return nil
}
