// Package memory provides an in-process TreeStore.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"sportspack/internal/domain"
	"sportspack/internal/ports"
)

// Store keeps nodes in a map guarded by a RWMutex. Returned nodes are
// copies; mutating them does not change the store.
type Store struct {
	mu       sync.RWMutex
	nodes    map[string]*domain.Node
	children map[string][]string
	newID    func() string
}

// Ensure Store implements TreeStore and TreeLister
var (
	_ ports.TreeStore  = (*Store)(nil)
	_ ports.TreeLister = (*Store)(nil)
)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		nodes:    make(map[string]*domain.Node),
		children: make(map[string][]string),
		newID:    uuid.NewString,
	}
}

// Put inserts or replaces a node with a caller-chosen ID. It is meant for
// building fixtures; the parent does not have to exist.
func (s *Store) Put(node *domain.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.nodes[node.ID]; ok {
		s.unlink(old.ParentID, old.ID)
	}
	s.nodes[node.ID] = node.Clone()
	s.children[node.ParentID] = append(s.children[node.ParentID], node.ID)
}

// GetNode returns a copy of the node or nil if absent
func (s *Store) GetNode(_ context.Context, id string) (*domain.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes[id].Clone(), nil
}

// GetChildren returns copies of the container children of parentID
func (s *Store) GetChildren(_ context.Context, parentID string) ([]*domain.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if parentID == "" {
		return nil, nil
	}
	return s.containersLocked(parentID), nil
}

// Roots returns all container nodes without a parent
func (s *Store) Roots(_ context.Context) ([]*domain.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.containersLocked(""), nil
}

func (s *Store) containersLocked(parentID string) []*domain.Node {
	var result []*domain.Node
	for _, id := range s.children[parentID] {
		if n := s.nodes[id]; n.IsContainer() {
			result = append(result, n.Clone())
		}
	}
	return result
}

// CreateNode inserts a new node under parentID and returns its ID
func (s *Store) CreateNode(_ context.Context, parentID string, node *domain.Node) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if parentID != "" {
		if _, ok := s.nodes[parentID]; !ok {
			return "", fmt.Errorf("parent %s does not exist", parentID)
		}
	}

	n := node.Clone()
	n.ID = s.newID()
	n.ParentID = parentID
	s.nodes[n.ID] = n
	s.children[parentID] = append(s.children[parentID], n.ID)
	return n.ID, nil
}

// UpdateNode applies update to an existing node
func (s *Store) UpdateNode(_ context.Context, id string, update domain.NodeUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("node %s does not exist", id)
	}
	update.Apply(n)
	return nil
}

func (s *Store) unlink(parentID, id string) {
	ids := s.children[parentID]
	for i, childID := range ids {
		if childID == id {
			s.children[parentID] = append(ids[:i:i], ids[i+1:]...)
			return
		}
	}
}
