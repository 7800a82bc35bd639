package commands

import (
	"context"

	"sportspack/internal/ports"
)

// ProviderCatalog lists and resolves providers
type ProviderCatalog interface {
	ports.ProviderLookup
	Names() []string
}

// ProviderInfo describes a registered provider
type ProviderInfo struct {
	Name       string
	Configured bool
}

// ListProvidersCommand lists registered providers
type ListProvidersCommand struct {
	catalog ProviderCatalog
}

// NewListProvidersCommand creates a new ListProvidersCommand
func NewListProvidersCommand(catalog ProviderCatalog) *ListProvidersCommand {
	return &ListProvidersCommand{catalog: catalog}
}

// Execute runs the list providers command
func (c *ListProvidersCommand) Execute(ctx context.Context) ([]ProviderInfo, error) {
	names := c.catalog.Names()
	infos := make([]ProviderInfo, 0, len(names))
	for _, name := range names {
		p, ok := c.catalog.Lookup(name)
		if !ok {
			continue
		}
		infos = append(infos, ProviderInfo{Name: name, Configured: p.IsConfigured()})
	}
	return infos, nil
}
