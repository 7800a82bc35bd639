package inheritance

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"sportspack/internal/adapters/memory"
	"sportspack/internal/application"
	"sportspack/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// countingStore counts reads and can fail or block them
type countingStore struct {
	*memory.Store
	gets     atomic.Int64
	children atomic.Int64

	failGet error

	mu      sync.Mutex
	gateID  string
	entered chan struct{}
	release chan struct{}
}

func newCountingStore() *countingStore {
	return &countingStore{Store: memory.NewStore()}
}

func (s *countingStore) GetNode(ctx context.Context, id string) (*domain.Node, error) {
	s.gets.Add(1)
	if s.failGet != nil {
		return nil, s.failGet
	}

	s.mu.Lock()
	gated := s.gateID == id && s.release != nil
	entered, release := s.entered, s.release
	if gated {
		s.gateID = ""
	}
	s.mu.Unlock()

	if gated {
		close(entered)
		<-release
	}
	// Honor cancellation like a database-backed store
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Store.GetNode(ctx, id)
}

func (s *countingStore) GetChildren(ctx context.Context, parentID string) ([]*domain.Node, error) {
	s.children.Add(1)
	return s.Store.GetChildren(ctx, parentID)
}

// gate blocks the next GetNode(id) until the returned release func is called
func (s *countingStore) gate(id string) (entered <-chan struct{}, release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gateID = id
	s.entered = make(chan struct{})
	s.release = make(chan struct{})
	rel := s.release
	return s.entered, func() { close(rel) }
}

func container(id, parent string, attrs map[domain.Attribute]string) *domain.Node {
	return &domain.Node{
		ID:         id,
		Type:       domain.NodeTypeContainer,
		ParentID:   parent,
		Title:      id,
		Attributes: attrs,
	}
}

// sport -> league -> match, with logo on sport and provider/remote ID on league
func seedHierarchy(s interface{ Put(*domain.Node) }) {
	s.Put(container("sport", "", map[domain.Attribute]string{domain.AttrLogo: "ball.png"}))
	s.Put(container("league", "sport", map[domain.Attribute]string{
		domain.AttrRemoteProvider: "statsperform",
		domain.AttrRemoteID:       "X1",
	}))
	s.Put(container("match", "league", nil))
}

func TestResolve_NearestAncestor(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedHierarchy(store)
	store.Put(container("final", "league", map[domain.Attribute]string{domain.AttrRemoteID: "E9"}))

	tests := []struct {
		node string
		attr domain.Attribute
		want string
	}{
		{"sport", domain.AttrLogo, "ball.png"},
		{"league", domain.AttrLogo, "ball.png"},
		{"match", domain.AttrLogo, "ball.png"},
		{"match", domain.AttrRemoteProvider, "statsperform"},
		{"match", domain.AttrRemoteID, "X1"},
		{"final", domain.AttrRemoteID, "E9"},
		{"sport", domain.AttrRemoteID, ""},
		{"missing", domain.AttrLogo, ""},
	}

	r := NewResolver(store)
	for _, tt := range tests {
		t.Run(tt.node+"/"+tt.attr.Key(), func(t *testing.T) {
			got, err := r.Resolve(ctx, tt.node, tt.attr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_CacheHitSkipsStore(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	seedHierarchy(store)
	r := NewResolver(store)

	_, err := r.Resolve(ctx, "match", domain.AttrLogo)
	require.NoError(t, err)
	readsAfterMiss := store.gets.Load()
	assert.Equal(t, int64(3), readsAfterMiss)

	got, err := r.Resolve(ctx, "match", domain.AttrLogo)
	require.NoError(t, err)
	assert.Equal(t, "ball.png", got)
	assert.Equal(t, readsAfterMiss, store.gets.Load(), "cache hit must not touch the store")

	stats := r.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}

func TestResolve_NonContainerDoesNotRecurse(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	seedHierarchy(store)
	store.Put(&domain.Node{ID: "team", Type: domain.NodeTypeTeam, ParentID: "league"})
	store.Put(&domain.Node{
		ID:         "venue",
		Type:       domain.NodeTypeVenue,
		ParentID:   "league",
		Attributes: map[domain.Attribute]string{domain.AttrLogo: "arena.png"},
	})
	r := NewResolver(store)

	got, err := r.Resolve(ctx, "team", domain.AttrRemoteProvider)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, int64(1), store.gets.Load())

	got, err = r.Resolve(ctx, "venue", domain.AttrLogo)
	require.NoError(t, err)
	assert.Equal(t, "arena.png", got)
}

func TestResolve_NegativeResultIsCached(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedHierarchy(store)
	r := NewResolver(store)

	got, err := r.Resolve(ctx, "match", domain.AttrRemoteID)
	require.NoError(t, err)
	assert.Equal(t, "X1", got)

	got, err = r.Resolve(ctx, "sport", domain.AttrRemoteID)
	require.NoError(t, err)
	assert.Empty(t, got)

	// A store-level write without invalidation stays invisible
	require.NoError(t, store.UpdateNode(ctx, "sport", domain.NodeUpdate{
		Attributes: map[domain.Attribute]string{domain.AttrRemoteID: "S1"},
	}))
	got, err = r.Resolve(ctx, "sport", domain.AttrRemoteID)
	require.NoError(t, err)
	assert.Empty(t, got, "cached empty result should survive until invalidated")

	require.NoError(t, r.Invalidate(ctx, "sport"))
	got, err = r.Resolve(ctx, "sport", domain.AttrRemoteID)
	require.NoError(t, err)
	assert.Equal(t, "S1", got)
}

func TestResolve_OverrideOnChildAfterInvalidate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.Put(container("A", "", map[domain.Attribute]string{
		domain.AttrRemoteProvider: "statsperform",
		domain.AttrRemoteID:       "X1",
	}))
	store.Put(container("B", "A", nil))
	r := NewResolver(store)

	got, err := r.Resolve(ctx, "B", domain.AttrRemoteProvider)
	require.NoError(t, err)
	assert.Equal(t, "statsperform", got)

	require.NoError(t, store.UpdateNode(ctx, "B", domain.NodeUpdate{
		Attributes: map[domain.Attribute]string{domain.AttrRemoteProvider: "custom"},
	}))
	require.NoError(t, r.Invalidate(ctx, "B"))

	got, err = r.Resolve(ctx, "B", domain.AttrRemoteProvider)
	require.NoError(t, err)
	assert.Equal(t, "custom", got)
}

func TestInvalidate_CascadesToDescendants(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedHierarchy(store)
	store.Put(container("leg1", "match", nil))
	r := NewResolver(store)

	for _, id := range []string{"sport", "league", "match", "leg1"} {
		for _, attr := range domain.Attributes {
			_, err := r.Resolve(ctx, id, attr)
			require.NoError(t, err)
		}
	}
	require.Equal(t, 12, r.Stats().Entries)

	require.NoError(t, store.UpdateNode(ctx, "sport", domain.NodeUpdate{
		Attributes: map[domain.Attribute]string{domain.AttrLogo: "new.png"},
	}))
	require.NoError(t, r.Invalidate(ctx, "league"))

	assert.Equal(t, 3, r.Stats().Entries, "only the sport entries should remain")

	got, err := r.Resolve(ctx, "leg1", domain.AttrLogo)
	require.NoError(t, err)
	assert.Equal(t, "new.png", got)

	got, err = r.Resolve(ctx, "sport", domain.AttrLogo)
	require.NoError(t, err)
	assert.Equal(t, "ball.png", got, "sport was not invalidated")
}

func TestInvalidate_ThenAncestorMutationIsVisible(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedHierarchy(store)
	r := NewResolver(store)

	_, err := r.Resolve(ctx, "match", domain.AttrLogo)
	require.NoError(t, err)

	require.NoError(t, r.Invalidate(ctx, "match"))
	require.NoError(t, store.UpdateNode(ctx, "league", domain.NodeUpdate{
		Attributes: map[domain.Attribute]string{domain.AttrLogo: "league.png"},
	}))

	got, err := r.Resolve(ctx, "match", domain.AttrLogo)
	require.NoError(t, err)
	assert.Equal(t, "league.png", got)
}

func TestInvalidate_WinsOverConcurrentStore(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	seedHierarchy(store)
	r := NewResolver(store)

	entered, release := store.gate("league")

	done := make(chan string)
	go func() {
		v, err := r.Resolve(ctx, "match", domain.AttrRemoteID)
		assert.NoError(t, err)
		done <- v
	}()

	<-entered
	require.NoError(t, store.UpdateNode(ctx, "league", domain.NodeUpdate{
		Attributes: map[domain.Attribute]string{domain.AttrRemoteID: "X2"},
	}))
	require.NoError(t, r.Invalidate(ctx, "league"))
	release()
	<-done

	assert.Equal(t, 0, r.Stats().Entries, "a walk that raced an invalidation must not be cached")

	got, err := r.Resolve(ctx, "match", domain.AttrRemoteID)
	require.NoError(t, err)
	assert.Equal(t, "X2", got)
}

func TestResolve_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedHierarchy(store)
	r := NewResolver(store, WithTTL(20*time.Millisecond))

	got, err := r.Resolve(ctx, "match", domain.AttrLogo)
	require.NoError(t, err)
	assert.Equal(t, "ball.png", got)

	require.NoError(t, store.UpdateNode(ctx, "sport", domain.NodeUpdate{
		Attributes: map[domain.Attribute]string{domain.AttrLogo: "new.png"},
	}))

	assert.Eventually(t, func() bool {
		v, err := r.Resolve(ctx, "match", domain.AttrLogo)
		return err == nil && v == "new.png"
	}, time.Second, 10*time.Millisecond)
}

func TestResolve_CycleTerminates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.Put(container("a", "b", nil))
	store.Put(container("b", "c", nil))
	store.Put(container("c", "a", nil))
	r := NewResolver(store)

	got, err := r.Resolve(ctx, "a", domain.AttrLogo)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, r.Invalidate(ctx, "a"))

	level, err := r.HierarchyLevel(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 3, level)
}

func TestResolve_MaxDepth(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.Put(container("n0", "", map[domain.Attribute]string{domain.AttrLogo: "deep.png"}))
	store.Put(container("n1", "n0", nil))
	store.Put(container("n2", "n1", nil))
	store.Put(container("n3", "n2", nil))

	shallow := NewResolver(store, WithMaxDepth(2))
	got, err := shallow.Resolve(ctx, "n3", domain.AttrLogo)
	require.NoError(t, err)
	assert.Empty(t, got)

	deep := NewResolver(store)
	got, err = deep.Resolve(ctx, "n3", domain.AttrLogo)
	require.NoError(t, err)
	assert.Equal(t, "deep.png", got)
}

func TestResolve_StoreErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	seedHierarchy(store)
	r := NewResolver(store)

	store.failGet = errors.New("connection reset")
	_, err := r.Resolve(ctx, "match", domain.AttrLogo)
	require.Error(t, err)
	assert.Equal(t, 0, r.Stats().Entries)

	store.failGet = nil
	got, err := r.Resolve(ctx, "match", domain.AttrLogo)
	require.NoError(t, err)
	assert.Equal(t, "ball.png", got)
}

func TestResolve_InvalidAttribute(t *testing.T) {
	r := NewResolver(memory.NewStore())
	_, err := r.Resolve(context.Background(), "x", domain.Attribute(99))
	assert.ErrorIs(t, err, application.ErrInvalidAttribute)
}

func TestResolve_ConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedHierarchy(store)
	r := NewResolver(store)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := r.Resolve(ctx, "match", domain.AttrRemoteProvider)
			assert.NoError(t, err)
			assert.Equal(t, "statsperform", v)
		}()
	}
	wg.Wait()
}

func TestResolve_SharedWalkSurvivesCallerCancel(t *testing.T) {
	store := newCountingStore()
	seedHierarchy(store)
	r := NewResolver(store)

	entered, release := store.gate("league")

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error)
	go func() {
		_, err := r.Resolve(ctxA, "match", domain.AttrRemoteProvider)
		errA <- err
	}()
	<-entered

	ctxB, cancelB := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelB()
	type result struct {
		v   string
		err error
	}
	resB := make(chan result)
	go func() {
		v, err := r.Resolve(ctxB, "match", domain.AttrRemoteProvider)
		resB <- result{v, err}
	}()

	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	release()
	got := <-resB
	require.NoError(t, got.err)
	assert.Equal(t, "statsperform", got.v)
	assert.NoError(t, ctxB.Err())
}

func TestHierarchyLevel(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedHierarchy(store)
	store.Put(container("orphan", "deleted", nil))
	store.Put(&domain.Node{ID: "team", Type: domain.NodeTypeTeam})
	r := NewResolver(store)

	tests := []struct {
		node      string
		wantLevel int
		wantLabel string
	}{
		{"sport", 0, "Category"},
		{"league", 1, "Grouping"},
		{"match", 2, "Item"},
		{"orphan", 1, "Grouping"},
		{"team", -1, "Unknown"},
		{"missing", -1, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.node, func(t *testing.T) {
			level, err := r.HierarchyLevel(ctx, tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, level)

			assert.Equal(t, tt.wantLabel, domain.HierarchyLabel(level))
		})
	}
}

func TestHierarchyLevel_ChildIsParentPlusOne(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	parent := ""
	for _, id := range []string{"l0", "l1", "l2", "l3", "l4"} {
		store.Put(container(id, parent, nil))
		parent = id
	}
	r := NewResolver(store)

	prev, err := r.HierarchyLevel(ctx, "l0")
	require.NoError(t, err)
	require.Equal(t, 0, prev)
	for _, id := range []string{"l1", "l2", "l3", "l4"} {
		level, err := r.HierarchyLevel(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, prev+1, level, id)
		prev = level
	}
	assert.Equal(t, "Unknown", domain.HierarchyLabel(prev))
}
