package repositories_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kona/models"
	"kona/repositories"
)

func TestArticleLoadMissing(t *testing.T) {
	store := repositories.NewFileArticleStore(t.TempDir(), false)

	_, err := store.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestArticleRoundTrip(t *testing.T) {
	store := repositories.NewFileArticleStore(t.TempDir(), false)
	ctx := context.Background()

	created := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	record := &models.ArticleRecord{
		TopicID:     "a1b2c3d4e5f6",
		MainTitle:   "전세사기 피해 확산",
		Keywords:    []string{"전세사기"},
		CreatedAt:   created,
		LastUpdated: created,
		Version:     2,
		ParentID:    "000000000000",
		VersionHistory: []models.VersionSnapshot{
			{Version: 1, ArticleID: "000000000000", Title: "전세사기 피해", CreatedAt: created},
		},
		SourceArticles:   []string{"https://news.example.com/1"},
		MainArticle:      models.MainArticle{Title: "전세사기 피해 확산", URL: "https://news.example.com/1"},
		GeneratedArticle: "# 전세사기 피해 확산\n\n본문",
		Analysis:         map[string]any{"summary": "요약"},
		UpdateHistory: []models.UpdateEntry{
			{Version: 2, UpdatedAt: created, Updates: models.UpdateSummary{HasUpdates: true}, Reason: "1개의 새로운 소스 발견"},
		},
	}

	require.NoError(t, store.Save(ctx, record.TopicID, record))

	loaded, err := store.Load(ctx, record.TopicID)
	require.NoError(t, err)
	assert.Equal(t, record, loaded)
}

func TestArticleBackfillsTopicID(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc123.json"), []byte(`{"main_title": "제목"}`), 0o644))

	store := repositories.NewFileArticleStore(dir, false)
	loaded, err := store.Load(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", loaded.TopicID)
}

func TestArticleCorruptLenient(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc123.json"), []byte("{broken"), 0o644))

	store := repositories.NewFileArticleStore(dir, false)
	_, err := store.Load(context.Background(), "abc123")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestArticleCorruptStrict(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc123.json"), []byte("{broken"), 0o644))

	store := repositories.NewFileArticleStore(dir, true)
	_, err := store.Load(context.Background(), "abc123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repositories.ErrNotFound)
}
