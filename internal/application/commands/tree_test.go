package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportspack/internal/domain"
)

func TestBuildTreeCommand(t *testing.T) {
	f := newSyncFixture(t)
	f.store.Put(&domain.Node{ID: "Z", Type: domain.NodeTypeContainer, Title: "Bundesliga"})
	f.store.Put(&domain.Node{ID: "B2", Type: domain.NodeTypeContainer, ParentID: "A", Title: "Group B"})
	f.store.Put(&domain.Node{ID: "C", Type: domain.NodeTypeContainer, ParentID: "B", Title: "Matchday 1"})
	f.store.Put(&domain.Node{ID: "T", Type: domain.NodeTypeTeam, ParentID: "B", Title: "Ajax"})

	forest, err := NewBuildTreeCommand(f.store, f.store, "").Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, forest, 2)

	assert.Equal(t, "Bundesliga", forest[0].Node.Title)
	cl := forest[1]
	assert.Equal(t, "Champions League", cl.Node.Title)
	require.Len(t, cl.Children, 2)
	assert.Equal(t, "Group A", cl.Children[0].Node.Title)
	assert.Equal(t, "Group B", cl.Children[1].Node.Title)

	groupA := cl.Children[0]
	assert.Equal(t, domain.LevelGrouping, groupA.Level)
	require.Len(t, groupA.Children, 1)
	assert.Equal(t, domain.LevelItem, groupA.Children[0].Level)
	assert.Same(t, groupA, groupA.Children[0].Parent)
}

func TestBuildTreeCommand_Subtree(t *testing.T) {
	f := newSyncFixture(t)

	forest, err := NewBuildTreeCommand(f.store, f.store, "B").Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, "Group A", forest[0].Node.Title)
	assert.Equal(t, 0, forest[0].Level)

	forest, err = NewBuildTreeCommand(f.store, f.store, "nope").Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, forest)
}
