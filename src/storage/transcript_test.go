package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "mcpchat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenAppliesMigrationsOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "mcpchat.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestSaveAndLoadTranscript(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	transcript := &Transcript{
		Title:     "arithmetic",
		Endpoint:  "https://example.com/sse",
		Backend:   "remote",
		Model:     "google/gemini-2.5-flash",
		ToolNames: JSONStringArray{"add", "echo"},
		CreatedAt: created,
	}
	turns := []Turn{
		{UserText: "What is 2+2?", AssistantText: "4"},
		{UserText: "And 3+3?", AssistantText: "6"},
	}
	require.NoError(t, db.SaveTranscript(ctx, transcript, turns))
	require.NotEmpty(t, transcript.ID)

	got, err := GetTranscript(ctx, db.DB(), transcript.ID)
	require.NoError(t, err)
	assert.Equal(t, "arithmetic", got.Title)
	assert.Equal(t, JSONStringArray{"add", "echo"}, got.ToolNames)
	assert.True(t, created.Equal(got.CreatedAt), "created_at = %s", got.CreatedAt)

	byPrefix, err := GetTranscript(ctx, db.DB(), transcript.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, transcript.ID, byPrefix.ID)

	stored, err := GetTurns(ctx, db.DB(), transcript.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, 1, stored[0].Seq)
	assert.Equal(t, "What is 2+2?", stored[0].UserText)
	assert.Equal(t, "6", stored[1].AssistantText)
}

func TestListTranscripts(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	older := &Transcript{ID: "aaaa-1", Title: "older", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &Transcript{ID: "aaaa-2", Title: "newer", CreatedAt: time.Now()}
	require.NoError(t, db.SaveTranscript(ctx, older, []Turn{{UserText: "hi", AssistantText: "hello"}}))
	require.NoError(t, db.SaveTranscript(ctx, newer, nil))

	list, err := ListTranscripts(ctx, db.DB(), 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Title)
	assert.Equal(t, 0, list[0].TurnCount)
	assert.Equal(t, 1, list[1].TurnCount)
	assert.Equal(t, JSONStringArray{}, list[0].ToolNames)

	limited, err := ListTranscripts(ctx, db.DB(), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = GetTranscript(ctx, db.DB(), "aaaa")
	assert.ErrorIs(t, err, ErrAmbiguousTranscript)

	_, err = GetTranscript(ctx, db.DB(), "zzzz")
	assert.ErrorIs(t, err, ErrTranscriptNotFound)
}

func TestDeleteTranscriptCascades(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	transcript := &Transcript{Title: "doomed"}
	require.NoError(t, db.SaveTranscript(ctx, transcript, []Turn{{UserText: "q", AssistantText: "a"}}))

	require.NoError(t, DeleteTranscript(ctx, db.DB(), transcript.ID))
	assert.ErrorIs(t, DeleteTranscript(ctx, db.DB(), transcript.ID), ErrTranscriptNotFound)

	turns, err := GetTurns(ctx, db.DB(), transcript.ID)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestExtractUpMigration(t *testing.T) {
	content := `-- +goose Up
-- +goose StatementBegin
CREATE TABLE a (id TEXT);
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
DROP TABLE a;
-- +goose StatementEnd
`
	assert.Equal(t, "CREATE TABLE a (id TEXT);", extractUpMigration(content))
}
