package domain

import (
	"fmt"
	"strings"
)

// NodeType represents the kind of entity stored in the tree
type NodeType int

const (
	NodeTypeUnknown   NodeType = iota
	NodeTypeContainer          // Category, grouping or item in the hierarchy
	NodeTypeTeam
	NodeTypePerson
	NodeTypeVenue
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeContainer:
		return "Container"
	case NodeTypeTeam:
		return "Team"
	case NodeTypePerson:
		return "Person"
	case NodeTypeVenue:
		return "Venue"
	default:
		return "Unknown"
	}
}

// StorageKey returns the value persisted for this type
func (t NodeType) StorageKey() string {
	switch t {
	case NodeTypeContainer:
		return "unit"
	case NodeTypeTeam:
		return "team"
	case NodeTypePerson:
		return "person"
	case NodeTypeVenue:
		return "venue"
	default:
		return ""
	}
}

// ParseNodeType accepts either the storage key ("unit") or the display
// name ("Container"), case-insensitively.
func ParseNodeType(s string) (NodeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unit", "container":
		return NodeTypeContainer, nil
	case "team":
		return NodeTypeTeam, nil
	case "person":
		return NodeTypePerson, nil
	case "venue":
		return NodeTypeVenue, nil
	default:
		return NodeTypeUnknown, fmt.Errorf("unknown node type: %q", s)
	}
}

// Attribute is one of the inheritable scalar fields of a node
type Attribute int

const (
	AttrLogo Attribute = iota
	AttrRemoteProvider
	AttrRemoteID
)

// Attributes lists every inheritable attribute in storage order
var Attributes = []Attribute{AttrLogo, AttrRemoteProvider, AttrRemoteID}

// Key returns the stable storage key of the attribute
func (a Attribute) Key() string {
	switch a {
	case AttrLogo:
		return "logo"
	case AttrRemoteProvider:
		return "remote_provider"
	case AttrRemoteID:
		return "remote_id"
	default:
		return ""
	}
}

func (a Attribute) String() string {
	if k := a.Key(); k != "" {
		return k
	}
	return fmt.Sprintf("Attribute(%d)", int(a))
}

// Valid reports whether a is one of the known attributes
func (a Attribute) Valid() bool {
	return a.Key() != ""
}

// ParseAttribute maps a storage key to its Attribute.
// Dashes are accepted in place of underscores ("remote-id").
func ParseAttribute(key string) (Attribute, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
	for _, a := range Attributes {
		if a.Key() == normalized {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown attribute: %q (expected logo, remote_provider or remote_id)", key)
}

// Node is an entity in the hierarchy
type Node struct {
	ID         string
	Type       NodeType
	ParentID   string // Empty for roots
	Title      string
	Content    string
	Attributes map[Attribute]string
}

// Value returns the node's own stored value for attr. Missing and empty
// are the same unset state.
func (n *Node) Value(attr Attribute) string {
	if n == nil || n.Attributes == nil {
		return ""
	}
	return n.Attributes[attr]
}

// IsContainer reports whether the node participates in inheritance
func (n *Node) IsContainer() bool {
	return n != nil && n.Type == NodeTypeContainer
}

// HasParent reports whether the node references a parent
func (n *Node) HasParent() bool {
	return n != nil && n.ParentID != ""
}

// Clone returns a deep copy of the node
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Attributes = make(map[Attribute]string, len(n.Attributes))
	for k, v := range n.Attributes {
		c.Attributes[k] = v
	}
	return &c
}

// NodeUpdate describes a partial update. Nil fields are left unchanged;
// attributes present in the map are overwritten (empty string unsets).
type NodeUpdate struct {
	Title      *string
	Content    *string
	Attributes map[Attribute]string
}

// Apply writes the update onto n in place
func (u NodeUpdate) Apply(n *Node) {
	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.Content != nil {
		n.Content = *u.Content
	}
	if len(u.Attributes) > 0 && n.Attributes == nil {
		n.Attributes = make(map[Attribute]string, len(u.Attributes))
	}
	for k, v := range u.Attributes {
		n.Attributes[k] = v
	}
}
