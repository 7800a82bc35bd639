// Package providers implements the remote event providers and the
// registry that selects one by name.
package providers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"sportspack/internal/domain"
	"sportspack/internal/ports"
)

// Credentials holds provider API settings such as keys or usernames
type Credentials map[string]string

// FetchFunc retrieves events for a remote competition. It replaces the
// HTTP integration of a provider, which lives outside this module.
type FetchFunc func(ctx context.Context, remoteID string, days int) ([]domain.SyncRecord, error)

// emptyFetch is the default fetch: no integration, no events
func emptyFetch(context.Context, string, int) ([]domain.SyncRecord, error) {
	return []domain.SyncRecord{}, nil
}

// Option configures a provider
type Option func(*remoteProvider)

// WithCredentials sets the provider credentials
func WithCredentials(c Credentials) Option {
	return func(p *remoteProvider) { p.credentials = c }
}

// WithFetch sets the function used to fetch events
func WithFetch(fn FetchFunc) Option {
	return func(p *remoteProvider) {
		if fn != nil {
			p.fetch = fn
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(p *remoteProvider) {
		if l != nil {
			p.logger = l
		}
	}
}

// remoteProvider is shared by every named provider; only the name differs
type remoteProvider struct {
	name        string
	credentials Credentials
	fetch       FetchFunc
	logger      *zap.Logger
}

// Ensure remoteProvider implements Provider
var _ ports.Provider = (*remoteProvider)(nil)

func newRemoteProvider(name string, opts ...Option) *remoteProvider {
	p := &remoteProvider{
		name:   name,
		fetch:  emptyFetch,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewStatsPerform creates the StatsPerform provider
func NewStatsPerform(opts ...Option) ports.Provider {
	return newRemoteProvider(domain.ProviderStatsPerform, opts...)
}

// NewHeimspiel creates the Heimspiel provider
func NewHeimspiel(opts ...Option) ports.Provider {
	return newRemoteProvider(domain.ProviderHeimspiel, opts...)
}

func (p *remoteProvider) Name() string {
	return p.name
}

func (p *remoteProvider) IsConfigured() bool {
	return len(p.credentials) > 0
}

func (p *remoteProvider) FetchEvents(ctx context.Context, remoteID string, days int) ([]domain.SyncRecord, error) {
	p.logger.Debug("fetching events",
		zap.String("provider", p.name),
		zap.String("remote_id", remoteID),
		zap.Int("days", days),
	)

	records, err := p.fetch(ctx, remoteID, days)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch events for %s: %w", p.name, remoteID, err)
	}
	if records == nil {
		records = []domain.SyncRecord{}
	}

	p.logger.Debug("fetched events",
		zap.String("provider", p.name),
		zap.Int("count", len(records)),
	)
	return records, nil
}
