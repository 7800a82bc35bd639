package commands

import (
	"context"
	"fmt"

	"sportspack/internal/application"
	"sportspack/internal/domain"
	"sportspack/internal/ports"
)

// EditContentResult contains the result of editing a node's content
type EditContentResult struct {
	NodeID  string
	Changed bool
	Message string
}

// EditContentCommand opens a node's content in an editor and stores the
// edited text
type EditContentCommand struct {
	store    ports.TreeStore
	resolver ports.AttributeResolver
	editor   ports.ContentEditor
	NodeID   string
}

// NewEditContentCommand creates a new EditContentCommand
func NewEditContentCommand(store ports.TreeStore, resolver ports.AttributeResolver, editor ports.ContentEditor, nodeID string) *EditContentCommand {
	return &EditContentCommand{
		store:    store,
		resolver: resolver,
		editor:   editor,
		NodeID:   nodeID,
	}
}

// Execute runs the edit content command
func (c *EditContentCommand) Execute(ctx context.Context) (*EditContentResult, error) {
	if err := application.ValidateRequired("nodeID", c.NodeID); err != nil {
		return nil, err
	}

	node, err := c.store.GetNode(ctx, c.NodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to read node: %w", err)
	}
	if node == nil {
		return nil, &application.NotFoundError{ID: c.NodeID}
	}

	edited, err := c.editor.Edit(ctx, node.Title, node.Content)
	if err != nil {
		return nil, err
	}
	if edited == node.Content {
		return &EditContentResult{NodeID: c.NodeID, Message: "No changes"}, nil
	}

	if err := c.store.UpdateNode(ctx, c.NodeID, domain.NodeUpdate{Content: &edited}); err != nil {
		return nil, fmt.Errorf("%w: failed to update node %s: %w", application.ErrWriteFailure, c.NodeID, err)
	}
	if err := c.resolver.Invalidate(ctx, c.NodeID); err != nil {
		return nil, fmt.Errorf("failed to invalidate cache for %s: %w", c.NodeID, err)
	}

	return &EditContentResult{
		NodeID:  c.NodeID,
		Changed: true,
		Message: fmt.Sprintf("Updated content of %s", node.Title),
	}, nil
}
