package ports

import (
	"context"

	"sportspack/internal/domain"
)

// Provider is a pluggable external source of events for a remote
// competition.
type Provider interface {
	// Name returns the stable identifier of the provider
	Name() string

	// IsConfigured reports whether credentials are present. It is a
	// deployment-readiness check, not a guarantee that fetching works.
	IsConfigured() bool

	// FetchEvents returns the events for remoteID within the next days.
	// The result is finite and may be empty.
	FetchEvents(ctx context.Context, remoteID string, days int) ([]domain.SyncRecord, error)
}

// ProviderLookup resolves a provider by name
type ProviderLookup interface {
	Lookup(name string) (Provider, bool)
}

// AttributeResolver resolves inherited attribute values and invalidates
// cached resolutions after mutations.
type AttributeResolver interface {
	Resolve(ctx context.Context, nodeID string, attr domain.Attribute) (string, error)
	Invalidate(ctx context.Context, nodeID string) error
	HierarchyLevel(ctx context.Context, nodeID string) (int, error)
}
