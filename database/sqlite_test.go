package database

import (
	"context"
	"path/filepath"
	"testing"

	"wayfarer/models"
	"wayfarer/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	db, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "wayfarer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLite_SaveAndLoad(t *testing.T) {
	db := openTestSQLite(t)
	ctx := context.Background()

	p := sampleProject("Kyoto")
	require.NoError(t, db.SaveProject(ctx, p))

	projects, err := db.LoadProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, p.ID, projects[0].ID)
	assert.Equal(t, p.Itinerary, projects[0].Itinerary)
	assert.Equal(t, p.Chats, projects[0].Chats)
	assert.True(t, p.CreatedAt.Equal(projects[0].CreatedAt))
}

func TestSQLite_UpsertKeepsOrder(t *testing.T) {
	db := openTestSQLite(t)
	ctx := context.Background()

	first := sampleProject("First")
	second := sampleProject("Second")
	require.NoError(t, db.SaveProject(ctx, first))
	require.NoError(t, db.SaveProject(ctx, second))

	first.Title = "First (edited)"
	require.NoError(t, db.SaveProject(ctx, first))

	projects, err := db.LoadProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, second.ID, projects[0].ID)
	assert.Equal(t, "First (edited)", projects[1].Title)
}

func TestSQLite_Delete(t *testing.T) {
	db := openTestSQLite(t)
	ctx := context.Background()

	p := sampleProject("Kyoto")
	require.NoError(t, db.SaveProject(ctx, p))
	require.NoError(t, db.DeleteProject(ctx, p.ID))
	require.NoError(t, db.DeleteProject(ctx, uuid.NewString()))

	projects, err := db.LoadProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestSQLite_StoreWriteThrough(t *testing.T) {
	db := openTestSQLite(t)
	ctx := context.Background()

	s := store.New(db)
	require.NoError(t, s.SeedDemo(ctx))
	p, err := s.CreateOrUpdate(ctx, models.SaveProjectRequest{Title: "Osaka", StartDate: "2025-05-01", EndDate: "2025-05-03"})
	require.NoError(t, err)
	msg, err := store.NewUserMessage("Best takoyaki?", nil, 1)
	require.NoError(t, err)
	_, err = s.StartChat(ctx, p.ID, "gemini-3-flash-preview", msg)
	require.NoError(t, err)

	reloaded := store.New(db)
	require.NoError(t, reloaded.Load(ctx))

	projects := reloaded.List()
	require.Len(t, projects, 2)
	assert.Equal(t, "Osaka", projects[0].Title)
	assert.Equal(t, "Tokyo, Japan", projects[1].Title)
	require.Len(t, projects[0].Chats, 1)
	assert.Equal(t, "Best takoyaki?", projects[0].Chats[0].Title)
	assert.Len(t, projects[1].Itinerary[0].Items, 2)
}

func TestSQLite_DeleteWithCancelledRequest(t *testing.T) {
	db := openTestSQLite(t)

	s := store.New(db)
	p, err := s.CreateOrUpdate(context.Background(), models.SaveProjectRequest{Title: "Kyoto", StartDate: "2025-04-01", EndDate: "2025-04-02"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, s.Delete(ctx, p.ID))

	reloaded := store.New(db)
	require.NoError(t, reloaded.Load(context.Background()))
	assert.Empty(t, reloaded.List())
}
