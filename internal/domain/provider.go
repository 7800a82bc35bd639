package domain

import (
	"slices"
	"strings"
)

// Provider names accepted on the remote_provider attribute
const (
	ProviderStatsPerform = "statsperform"
	ProviderHeimspiel    = "heimspiel"
	ProviderSportradar   = "sportradar"
	ProviderCustom       = "custom"
)

// AllowedProviders lists the provider names that may be stored on a node.
// Not all of them have a registered implementation.
var AllowedProviders = []string{
	ProviderStatsPerform,
	ProviderHeimspiel,
	ProviderSportradar,
	ProviderCustom,
}

// SanitizeProvider returns the trimmed provider name if it is allowed,
// otherwise the empty string.
func SanitizeProvider(value string) string {
	value = strings.TrimSpace(value)
	if slices.Contains(AllowedProviders, value) {
		return value
	}
	return ""
}
