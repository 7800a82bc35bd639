package commands

import (
	"context"
	"fmt"

	"sportspack/internal/application"
	"sportspack/internal/domain"
	"sportspack/internal/ports"
)

// CreateNodeResult contains the result of creating a node
type CreateNodeResult struct {
	Node    *domain.Node
	Message string
}

// CreateNodeCommand creates a node, optionally under a parent container
type CreateNodeCommand struct {
	store      ports.TreeStore
	resolver   ports.AttributeResolver
	ParentID   string
	Type       string
	Title      string
	Attributes map[string]string
}

// NewCreateNodeCommand creates a new CreateNodeCommand. An empty nodeType
// creates a container.
func NewCreateNodeCommand(store ports.TreeStore, resolver ports.AttributeResolver, parentID, nodeType, title string, attributes map[string]string) *CreateNodeCommand {
	return &CreateNodeCommand{
		store:      store,
		resolver:   resolver,
		ParentID:   parentID,
		Type:       nodeType,
		Title:      title,
		Attributes: attributes,
	}
}

// Validate checks if the create operation is valid
func (c *CreateNodeCommand) Validate() error {
	if err := application.ValidateRequired("title", c.Title); err != nil {
		return err
	}

	if c.Type != "" {
		if _, err := domain.ParseNodeType(c.Type); err != nil {
			return &application.ValidationError{Field: "type", Message: err.Error()}
		}
	}

	for key, value := range c.Attributes {
		attr, err := application.ValidateAttribute("attributes", key)
		if err != nil {
			return err
		}
		if attr == domain.AttrRemoteProvider && value != "" && domain.SanitizeProvider(value) == "" {
			return &application.ValidationError{
				Field:   "attributes",
				Message: fmt.Sprintf("unsupported provider %q", value),
			}
		}
	}
	return nil
}

// Execute runs the create node command
func (c *CreateNodeCommand) Execute(ctx context.Context) (*CreateNodeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	nodeType := domain.NodeTypeContainer
	if c.Type != "" {
		nodeType, _ = domain.ParseNodeType(c.Type)
	}

	if c.ParentID != "" {
		parent, err := c.store.GetNode(ctx, c.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to read parent: %w", err)
		}
		if !parent.IsContainer() {
			return nil, &application.NotFoundError{ID: c.ParentID, Reason: "parent must be an existing container"}
		}
	}

	node := &domain.Node{
		Type:       nodeType,
		Title:      c.Title,
		Attributes: make(map[domain.Attribute]string, len(c.Attributes)),
	}
	for key, value := range c.Attributes {
		attr, _ := domain.ParseAttribute(key)
		if attr == domain.AttrRemoteProvider {
			value = domain.SanitizeProvider(value)
		}
		node.Attributes[attr] = value
	}

	id, err := c.store.CreateNode(ctx, c.ParentID, node)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create node: %w", application.ErrWriteFailure, err)
	}
	node.ID = id
	node.ParentID = c.ParentID

	if err := c.resolver.Invalidate(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to invalidate cache for %s: %w", id, err)
	}

	return &CreateNodeResult{
		Node:    node,
		Message: fmt.Sprintf("Created %s: %s %s", nodeType, id, node.Title),
	}, nil
}
