package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"sportspack/internal/application"
	"sportspack/internal/domain"
	"sportspack/internal/ports"
)

// DefaultDays is the lookahead window used when none is given
const DefaultDays = 30

// SyncEngine fetches events from a provider and reconciles them into the
// children of a container. One engine is shared by all sync commands so
// that runs against the same container are serialized.
type SyncEngine struct {
	store     ports.TreeStore
	resolver  ports.AttributeResolver
	providers ports.ProviderLookup
	logger    *zap.Logger
	validate  *validator.Validate
	locks     *keyedMutex
}

// NewSyncEngine creates a SyncEngine
func NewSyncEngine(store ports.TreeStore, resolver ports.AttributeResolver, providers ports.ProviderLookup, logger *zap.Logger) *SyncEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncEngine{
		store:     store,
		resolver:  resolver,
		providers: providers,
		logger:    logger,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		locks:     newKeyedMutex(),
	}
}

// SyncEventsResult contains the outcome of a sync run
type SyncEventsResult struct {
	ContainerID string
	Provider    string
	RemoteID    string
	domain.SyncStats

	// Errors aggregates the per-record write failures, nil if none
	Errors  error
	Message string
}

// SyncEventsCommand syncs events for a container from its provider
type SyncEventsCommand struct {
	engine           *SyncEngine
	ContainerID      string
	Days             int
	ProviderOverride string
}

// NewSyncEventsCommand creates a new SyncEventsCommand. days of zero
// selects DefaultDays; an empty providerOverride uses the inherited
// provider.
func NewSyncEventsCommand(engine *SyncEngine, containerID string, days int, providerOverride string) *SyncEventsCommand {
	return &SyncEventsCommand{
		engine:           engine,
		ContainerID:      containerID,
		Days:             days,
		ProviderOverride: providerOverride,
	}
}

// Validate checks the command arguments
func (c *SyncEventsCommand) Validate() error {
	if err := application.ValidateRequired("containerID", c.ContainerID); err != nil {
		return err
	}
	return application.ValidateDays(c.Days)
}

// Execute runs the sync. Not-found, missing configuration and unknown
// provider errors are returned before the provider is called or anything
// is written. Per-record write failures do not abort the run; they are
// reported in the result's Errors.
func (c *SyncEventsCommand) Execute(ctx context.Context) (*SyncEventsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	days := c.Days
	if days == 0 {
		days = DefaultDays
	}

	return c.engine.sync(ctx, c.ContainerID, days, strings.TrimSpace(c.ProviderOverride))
}

func (e *SyncEngine) sync(ctx context.Context, containerID string, days int, providerName string) (*SyncEventsResult, error) {
	container, err := e.store.GetNode(ctx, containerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read container: %w", err)
	}
	if container == nil {
		return nil, &application.NotFoundError{ID: containerID}
	}
	if !container.IsContainer() {
		return nil, &application.NotFoundError{
			ID:     containerID,
			Reason: fmt.Sprintf("expected a container, got %s", container.Type),
		}
	}

	if providerName == "" {
		providerName, err = e.resolver.Resolve(ctx, containerID, domain.AttrRemoteProvider)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve provider: %w", err)
		}
	}
	if providerName == "" {
		return nil, &application.ConfigMissingError{ContainerID: containerID, Setting: "provider"}
	}

	remoteID, err := e.resolver.Resolve(ctx, containerID, domain.AttrRemoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve remote ID: %w", err)
	}
	if remoteID == "" {
		return nil, &application.ConfigMissingError{ContainerID: containerID, Setting: "remote ID"}
	}

	provider, ok := e.providers.Lookup(providerName)
	if !ok {
		return nil, &application.UnknownProviderError{Name: providerName}
	}

	logger := e.logger.With(
		zap.String("container_id", containerID),
		zap.String("container", container.Title),
		zap.String("provider", providerName),
		zap.String("remote_id", remoteID),
	)
	if !provider.IsConfigured() {
		logger.Warn("provider has no credentials configured")
	}

	unlock := e.locks.Lock(containerID)
	defer unlock()

	start := time.Now()
	logger.Info("syncing events", zap.Int("days", days))

	records, err := provider.FetchEvents(ctx, remoteID, days)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", application.ErrFetchFailed, err)
	}

	result := &SyncEventsResult{
		ContainerID: containerID,
		Provider:    providerName,
		RemoteID:    remoteID,
	}
	result.Fetched = len(records)

	if len(records) == 0 {
		logger.Warn("no events returned from provider")
	} else {
		result.Errors = e.reconcileAll(ctx, logger, containerID, providerName, records, &result.SyncStats)
	}

	// Invalidate even after failures or cancellation: some writes may
	// have landed.
	if err := e.resolver.Invalidate(context.WithoutCancel(ctx), containerID); err != nil {
		logger.Error("failed to invalidate inheritance cache", zap.Error(err))
		result.Errors = multierr.Append(result.Errors, fmt.Errorf("failed to invalidate cache: %w", err))
	}

	result.Duration = time.Since(start)
	result.Message = fmt.Sprintf("Sync complete! Created: %d, Updated: %d", result.Created, result.Updated)
	if result.Skipped > 0 || result.Failed > 0 {
		result.Message += fmt.Sprintf(", Skipped: %d, Failed: %d", result.Skipped, result.Failed)
	}

	logger.Info("sync finished",
		zap.Int("fetched", result.Fetched),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

// reconcileAll applies every record in order and returns the collected
// per-record errors
func (e *SyncEngine) reconcileAll(ctx context.Context, logger *zap.Logger, containerID, providerName string, records []domain.SyncRecord, stats *domain.SyncStats) error {
	existing, err := e.indexChildren(ctx, logger, containerID)
	if err != nil {
		stats.Failed += len(records)
		return fmt.Errorf("failed to list existing events: %w", err)
	}

	var errs error
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			stats.Skipped += len(records) - i
			errs = multierr.Append(errs, err)
			break
		}

		if err := e.validate.Struct(rec); err != nil {
			logger.Warn("skipping invalid record", zap.String("record_remote_id", rec.RemoteID), zap.Error(err))
			stats.Record(domain.OutcomeSkipped)
			continue
		}

		outcome, err := e.reconcile(ctx, containerID, providerName, rec, existing)
		stats.Record(outcome)
		if err != nil {
			logger.Error("failed to write record", zap.String("record_remote_id", rec.RemoteID), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		logger.Debug("reconciled record",
			zap.String("record_remote_id", rec.RemoteID),
			zap.Stringer("outcome", outcome),
		)
	}
	return errs
}

// indexChildren maps the remote ID of every existing child container to
// its node ID
func (e *SyncEngine) indexChildren(ctx context.Context, logger *zap.Logger, containerID string) (map[string]string, error) {
	children, err := e.store.GetChildren(ctx, containerID)
	if err != nil {
		return nil, err
	}

	// Lowest ID wins when data already holds duplicates
	slices.SortFunc(children, func(a, b *domain.Node) int { return strings.Compare(a.ID, b.ID) })

	index := make(map[string]string, len(children))
	for _, child := range children {
		remoteID := child.Value(domain.AttrRemoteID)
		if remoteID == "" {
			continue
		}
		if _, dup := index[remoteID]; dup {
			logger.Warn("duplicate remote ID among children",
				zap.String("record_remote_id", remoteID),
				zap.String("node_id", child.ID),
			)
			continue
		}
		index[remoteID] = child.ID
	}
	return index, nil
}

// reconcile updates the child matching rec.RemoteID or creates one
func (e *SyncEngine) reconcile(ctx context.Context, containerID, providerName string, rec domain.SyncRecord, existing map[string]string) (domain.SyncOutcome, error) {
	attrs := map[domain.Attribute]string{
		domain.AttrRemoteProvider: providerName,
		domain.AttrRemoteID:       rec.RemoteID,
	}

	if nodeID, ok := existing[rec.RemoteID]; ok {
		err := e.store.UpdateNode(ctx, nodeID, domain.NodeUpdate{
			Title:      &rec.Title,
			Content:    &rec.Content,
			Attributes: attrs,
		})
		if err != nil {
			return domain.OutcomeFailed, &application.RecordError{RemoteID: rec.RemoteID, Op: "update", Err: err}
		}
		return domain.OutcomeUpdated, nil
	}

	nodeID, err := e.store.CreateNode(ctx, containerID, &domain.Node{
		Type:       domain.NodeTypeContainer,
		Title:      rec.Title,
		Content:    rec.Content,
		Attributes: attrs,
	})
	if err != nil {
		return domain.OutcomeFailed, &application.RecordError{RemoteID: rec.RemoteID, Op: "create", Err: err}
	}
	existing[rec.RemoteID] = nodeID
	return domain.OutcomeCreated, nil
}
