package commands

import (
	"context"
	"fmt"

	"sportspack/internal/application"
	"sportspack/internal/domain"
	"sportspack/internal/ports"
)

// AttributeValue is a node's own and effective value for one attribute
type AttributeValue struct {
	Attribute domain.Attribute
	Own       string
	Effective string
}

// Inherited reports whether the effective value comes from an ancestor
func (v AttributeValue) Inherited() bool {
	return v.Own == "" && v.Effective != ""
}

// NodeDetails describes a node with its resolved attributes
type NodeDetails struct {
	Node   *domain.Node
	Level  int
	Label  string
	Values []AttributeValue
}

// ShowNodeCommand loads a node and resolves all of its attributes
type ShowNodeCommand struct {
	store    ports.TreeStore
	resolver ports.AttributeResolver
	NodeID   string
}

// NewShowNodeCommand creates a new ShowNodeCommand
func NewShowNodeCommand(store ports.TreeStore, resolver ports.AttributeResolver, nodeID string) *ShowNodeCommand {
	return &ShowNodeCommand{
		store:    store,
		resolver: resolver,
		NodeID:   nodeID,
	}
}

// Execute runs the show node command
func (c *ShowNodeCommand) Execute(ctx context.Context) (*NodeDetails, error) {
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

	level, err := c.resolver.HierarchyLevel(ctx, c.NodeID)
	if err != nil {
		return nil, err
	}

	details := &NodeDetails{
		Node:  node,
		Level: level,
		Label: domain.HierarchyLabel(level),
	}
	for _, attr := range domain.Attributes {
		effective, err := c.resolver.Resolve(ctx, c.NodeID, attr)
		if err != nil {
			return nil, err
		}
		details.Values = append(details.Values, AttributeValue{
			Attribute: attr,
			Own:       node.Value(attr),
			Effective: effective,
		})
	}
	return details, nil
}

// ResolveAttributeCommand resolves one attribute of one node
type ResolveAttributeCommand struct {
	resolver  ports.AttributeResolver
	NodeID    string
	Attribute string
}

// NewResolveAttributeCommand creates a new ResolveAttributeCommand
func NewResolveAttributeCommand(resolver ports.AttributeResolver, nodeID, attribute string) *ResolveAttributeCommand {
	return &ResolveAttributeCommand{resolver: resolver, NodeID: nodeID, Attribute: attribute}
}

// Execute resolves the attribute; an unset attribute yields ""
func (c *ResolveAttributeCommand) Execute(ctx context.Context) (string, error) {
	if err := application.ValidateRequired("nodeID", c.NodeID); err != nil {
		return "", err
	}
	attr, err := application.ValidateAttribute("attribute", c.Attribute)
	if err != nil {
		return "", err
	}
	return c.resolver.Resolve(ctx, c.NodeID, attr)
}
