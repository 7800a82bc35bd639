package commands

import (
	"context"
	"fmt"
	"strings"

	"sportspack/internal/application"
	"sportspack/internal/domain"
	"sportspack/internal/ports"
)

// SetAttributeResult contains the result of setting an attribute
type SetAttributeResult struct {
	NodeID    string
	Attribute domain.Attribute
	Value     string
	Message   string
}

// SetAttributeCommand stores a node's own attribute value and invalidates
// every cached resolution that could have read through the node
type SetAttributeCommand struct {
	store     ports.TreeStore
	resolver  ports.AttributeResolver
	NodeID    string
	Attribute string
	Value     string
}

// NewSetAttributeCommand creates a new SetAttributeCommand. An empty
// value unsets the attribute so it is inherited again.
func NewSetAttributeCommand(store ports.TreeStore, resolver ports.AttributeResolver, nodeID, attribute, value string) *SetAttributeCommand {
	return &SetAttributeCommand{
		store:     store,
		resolver:  resolver,
		NodeID:    nodeID,
		Attribute: attribute,
		Value:     value,
	}
}

// Validate checks the command arguments
func (c *SetAttributeCommand) Validate() error {
	if err := application.ValidateRequired("nodeID", c.NodeID); err != nil {
		return err
	}
	attr, err := application.ValidateAttribute("attribute", c.Attribute)
	if err != nil {
		return err
	}

	if attr == domain.AttrRemoteProvider && strings.TrimSpace(c.Value) != "" &&
		domain.SanitizeProvider(c.Value) == "" {
		return &application.ValidationError{
			Field: "value",
			Message: fmt.Sprintf("unsupported provider %q (expected one of: %s)",
				c.Value, strings.Join(domain.AllowedProviders, ", ")),
		}
	}
	return nil
}

// Execute runs the set attribute command
func (c *SetAttributeCommand) Execute(ctx context.Context) (*SetAttributeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	attr, _ := domain.ParseAttribute(c.Attribute)

	value := strings.TrimSpace(c.Value)
	if attr == domain.AttrRemoteProvider {
		value = domain.SanitizeProvider(value)
	}

	node, err := c.store.GetNode(ctx, c.NodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to read node: %w", err)
	}
	if node == nil {
		return nil, &application.NotFoundError{ID: c.NodeID}
	}

	err = c.store.UpdateNode(ctx, c.NodeID, domain.NodeUpdate{
		Attributes: map[domain.Attribute]string{attr: value},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to update node %s: %w", application.ErrWriteFailure, c.NodeID, err)
	}

	if err := c.resolver.Invalidate(ctx, c.NodeID); err != nil {
		return nil, fmt.Errorf("failed to invalidate cache for %s: %w", c.NodeID, err)
	}

	msg := fmt.Sprintf("Set %s on %s to %q", attr, node.Title, value)
	if value == "" {
		msg = fmt.Sprintf("Cleared %s on %s", attr, node.Title)
	}
	return &SetAttributeResult{
		NodeID:    c.NodeID,
		Attribute: attr,
		Value:     value,
		Message:   msg,
	}, nil
}
