package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kona/models"
	"kona/repositories"
)

func newTestCache(t *testing.T) *ArticleCache {
	t.Helper()
	dir := t.TempDir()
	return NewArticleCache(
		repositories.NewFileTopicIndexStore(dir, false),
		repositories.NewFileArticleStore(dir, false),
	)
}

func TestSaveArticleDefaults(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	record := &models.ArticleRecord{
		TopicID:        "aaaaaaaaaaaa",
		MainTitle:      "원래 제목",
		SourceArticles: []string{"https://a.example.com", "https://a.example.com"},
	}
	require.NoError(t, c.SaveArticle(ctx, record))

	loaded, err := c.LoadArticle(ctx, "aaaaaaaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Version)
	assert.False(t, loaded.CreatedAt.IsZero())
	assert.Equal(t, []string{"https://a.example.com"}, loaded.SourceArticles)

	// 인덱스 투영도 같이 갱신된다
	index, err := c.index.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "원래 제목", index["aaaaaaaaaaaa"].MainTitle)
}

func TestSaveArticleExtractsMarkdownTitle(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	record := &models.ArticleRecord{
		TopicID:          "aaaaaaaaaaaa",
		MainTitle:        "원래 제목",
		GeneratedArticle: "# 합성 기사 제목\n\n본문 첫 단락",
	}
	require.NoError(t, c.SaveArticle(ctx, record))

	loaded, err := c.LoadArticle(ctx, "aaaaaaaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, "합성 기사 제목", loaded.MainTitle)
}

func TestLoadArticleMissing(t *testing.T) {
	c := newTestCache(t)

	_, err := c.LoadArticle(context.Background(), "missing00000")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUpdateArticle(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SaveArticle(ctx, &models.ArticleRecord{
		TopicID:   "aaaaaaaaaaaa",
		MainTitle: "사건 전개",
		Analysis:  map[string]any{"key_points": []any{"첫 쟁점"}},
	}))

	updated, err := c.UpdateArticle(ctx, "aaaaaaaaaaaa",
		models.UpdateSummary{
			HasUpdates: true,
			Reasons:    []string{"1개의 새로운 소스 발견"},
			NewSources: []string{"https://b.example.com"},
		},
		map[string]any{"key_points": []any{"새 쟁점"}},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, updated.Version)
	require.Len(t, updated.UpdateHistory, 1)
	assert.Equal(t, 2, updated.UpdateHistory[0].Version)
	assert.Equal(t, "1개의 새로운 소스 발견", updated.UpdateHistory[0].Reason)

	// 분석 리스트는 교체가 아니라 이어 붙인다
	assert.Equal(t, []any{"첫 쟁점", "새 쟁점"}, updated.Analysis["key_points"])

	index, err := c.index.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, index["aaaaaaaaaaaa"].Version)
}

func TestTopicSummariesOrder(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	require.NoError(t, c.index.Save(ctx, map[string]models.TopicIndexEntry{
		"old000000000": {ID: "old000000000", LastUpdated: base.Add(-2 * time.Hour)},
		"new000000000": {ID: "new000000000", LastUpdated: base},
		"mid000000000": {ID: "mid000000000", LastUpdated: base.Add(-1 * time.Hour)},
	}))

	summaries, err := c.TopicSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "new000000000", summaries[0].ID)
	assert.Equal(t, "mid000000000", summaries[1].ID)
	assert.Equal(t, "old000000000", summaries[2].ID)
}
