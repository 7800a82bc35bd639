// Package inheritance resolves attribute values over the container
// hierarchy. A node inherits an attribute from its nearest ancestor that
// sets it; resolutions are cached per (node, attribute) until their TTL
// expires or the node or one of its ancestors is invalidated.
package inheritance

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"sportspack/internal/application"
	"sportspack/internal/domain"
	"sportspack/internal/ports"
)

const (
	// DefaultTTL is how long a resolved value stays cached
	DefaultTTL = time.Hour
	// DefaultMaxDepth bounds ancestor walks on malformed data
	DefaultMaxDepth = 64
)

// Resolver implements ports.AttributeResolver over a TreeStore
type Resolver struct {
	store    ports.TreeStore
	cache    *valueCache
	group    singleflight.Group
	logger   *zap.Logger
	maxDepth int

	ttl             time.Duration
	cleanupInterval time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// Ensure Resolver implements AttributeResolver
var _ ports.AttributeResolver = (*Resolver)(nil)

// Option configures a Resolver
type Option func(*Resolver)

// WithTTL sets the cache TTL
func WithTTL(ttl time.Duration) Option {
	return func(r *Resolver) { r.ttl = ttl }
}

// WithCleanupInterval enables periodic purging of expired entries.
// Zero (the default) starts no background goroutine; expired entries are
// then ignored on read and replaced on the next store.
func WithCleanupInterval(d time.Duration) Option {
	return func(r *Resolver) { r.cleanupInterval = d }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMaxDepth bounds how many nodes a single walk may visit
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// NewResolver creates a Resolver with its own isolated cache
func NewResolver(store ports.TreeStore, opts ...Option) *Resolver {
	r := &Resolver{
		store:    store,
		logger:   zap.NewNop(),
		maxDepth: DefaultMaxDepth,
		ttl:      DefaultTTL,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.cache = newValueCache(r.ttl, r.cleanupInterval)
	return r
}

// Resolve returns the value of attr on nodeID or its nearest ancestor that
// sets it, or "" if none does. Missing data is never an error; only store
// failures, unknown attributes and ctx cancellation are.
//
// Concurrent misses on one key share a walk. The walk runs detached from
// any single caller's cancellation; each caller stops waiting when its own
// ctx is done.
func (r *Resolver) Resolve(ctx context.Context, nodeID string, attr domain.Attribute) (string, error) {
	if !attr.Valid() {
		return "", fmt.Errorf("%w: %v", application.ErrInvalidAttribute, attr)
	}

	key := cacheKey(nodeID, attr)
	if v, ok := r.cache.get(key); ok {
		r.hits.Add(1)
		return v, nil
	}
	r.misses.Add(1)

	gen := r.cache.generation(key)
	ch := r.group.DoChan(flightKey(key, gen), func() (any, error) {
		return r.walk(context.WithoutCancel(ctx), nodeID, attr, make(map[string]struct{}))
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	if res.Err != nil {
		return "", res.Err
	}

	value := res.Val.(string)
	if !r.cache.storeIfCurrent(key, value, gen) {
		r.logger.Debug("discarded resolution invalidated mid-walk",
			zap.String("node_id", nodeID),
			zap.Stringer("attribute", attr),
		)
	}
	return value, nil
}

// walk reads nodeID's own value and recurses on its parent while the node
// is a container with no value set.
func (r *Resolver) walk(ctx context.Context, nodeID string, attr domain.Attribute, visited map[string]struct{}) (string, error) {
	if _, seen := visited[nodeID]; seen {
		r.logger.Warn("cycle in container hierarchy",
			zap.String("node_id", nodeID),
			zap.Stringer("attribute", attr),
		)
		return "", nil
	}
	if len(visited) >= r.maxDepth {
		r.logger.Warn("container hierarchy exceeds maximum depth",
			zap.String("node_id", nodeID),
			zap.Int("max_depth", r.maxDepth),
		)
		return "", nil
	}
	visited[nodeID] = struct{}{}

	node, err := r.store.GetNode(ctx, nodeID)
	if err != nil {
		return "", fmt.Errorf("failed to read node %s: %w", nodeID, err)
	}

	if v := node.Value(attr); v != "" {
		return v, nil
	}

	if !node.IsContainer() || !node.HasParent() {
		return "", nil
	}

	return r.walk(ctx, node.ParentID, attr, visited)
}

// Invalidate drops every cached attribute of nodeID and, recursively, of
// all its container descendants.
func (r *Resolver) Invalidate(ctx context.Context, nodeID string) error {
	return r.invalidate(ctx, nodeID, make(map[string]struct{}))
}

func (r *Resolver) invalidate(ctx context.Context, nodeID string, visited map[string]struct{}) error {
	if _, seen := visited[nodeID]; seen {
		return nil
	}
	visited[nodeID] = struct{}{}

	for _, attr := range domain.Attributes {
		r.cache.delete(cacheKey(nodeID, attr))
	}

	children, err := r.store.GetChildren(ctx, nodeID)
	if err != nil {
		return fmt.Errorf("failed to list children of %s: %w", nodeID, err)
	}

	var errs error
	for _, child := range children {
		errs = multierr.Append(errs, r.invalidate(ctx, child.ID, visited))
	}
	return errs
}

// HierarchyLevel counts parent hops from nodeID to its root (root = 0).
// It returns domain.LevelUnknown for missing or non-container nodes. A
// dangling parent reference ends the walk at the hops completed so far.
func (r *Resolver) HierarchyLevel(ctx context.Context, nodeID string) (int, error) {
	node, err := r.store.GetNode(ctx, nodeID)
	if err != nil {
		return domain.LevelUnknown, fmt.Errorf("failed to read node %s: %w", nodeID, err)
	}
	if !node.IsContainer() {
		return domain.LevelUnknown, nil
	}

	visited := map[string]struct{}{node.ID: {}}
	level := 0
	current := node
	for current.HasParent() {
		level++
		if _, seen := visited[current.ParentID]; seen || level >= r.maxDepth {
			r.logger.Warn("stopped level walk on malformed hierarchy",
				zap.String("node_id", nodeID),
				zap.Int("level", level),
			)
			break
		}
		visited[current.ParentID] = struct{}{}

		parent, err := r.store.GetNode(ctx, current.ParentID)
		if err != nil {
			return domain.LevelUnknown, fmt.Errorf("failed to read node %s: %w", current.ParentID, err)
		}
		if parent == nil {
			break
		}
		current = parent
	}

	return level, nil
}

// Stats reports cache counters
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// Stats returns the current cache counters
func (r *Resolver) Stats() Stats {
	return Stats{
		Hits:    r.hits.Load(),
		Misses:  r.misses.Load(),
		Entries: r.cache.len(),
	}
}
