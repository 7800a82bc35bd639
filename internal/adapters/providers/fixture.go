package providers

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"sportspack/internal/domain"
)

// fixtureEvent is one event in a fixture file. StartsAt is optional;
// events without it are always in range.
type fixtureEvent struct {
	domain.SyncRecord `yaml:",inline"`
	StartsAt          time.Time `yaml:"starts_at,omitempty"`
}

// fixtureFile maps a remote competition ID to its events
type fixtureFile map[string][]fixtureEvent

// FixtureFetch returns a FetchFunc that serves events from a YAML file:
//
//	X1:
//	  - remote_id: E1
//	    title: Final
//	    starts_at: 2026-05-30T18:00:00Z
//
// The file is read on every call so edits are picked up between syncs.
func FixtureFetch(path string) FetchFunc {
	return fixtureFetch(path, time.Now)
}

func fixtureFetch(path string, now func() time.Time) FetchFunc {
	return func(_ context.Context, remoteID string, days int) ([]domain.SyncRecord, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture file: %w", err)
		}

		var file fixtureFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse fixture file %s: %w", path, err)
		}

		start := now()
		end := start.AddDate(0, 0, days)

		records := make([]domain.SyncRecord, 0, len(file[remoteID]))
		for _, ev := range file[remoteID] {
			if !ev.StartsAt.IsZero() && (ev.StartsAt.Before(start) || ev.StartsAt.After(end)) {
				continue
			}
			records = append(records, ev.SyncRecord)
		}
		return records, nil
	}
}
