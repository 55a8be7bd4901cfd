package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kona/models"
	"kona/repositories"
	"kona/similarity"
)

func newTestEngine(t *testing.T) (*Engine, *VersionManager, *ArticleCache, string) {
	t.Helper()
	dir := t.TempDir()
	index := repositories.NewFileTopicIndexStore(dir, false)
	articles := repositories.NewFileArticleStore(dir, false)
	extractor := similarity.NewRuleBasedExtractor()

	versions := NewVersionManager(index)
	cache := NewArticleCache(index, articles)
	engine := NewEngine(
		NewResolver(index, extractor, testSimilarityConfig()),
		newTestEvaluator(versions.now()),
		versions,
		cache,
		nil,
	)
	return engine, versions, cache, dir
}

func submission(sources ...string) (models.CandidateTopic, models.ArticleData) {
	candidate := models.CandidateTopic{
		Title:      "전세사기 피해 확산",
		Keywords:   []string{"전세사기", "피해"},
		SourceURLs: sources,
		Content:    "전세사기 피해가 확산되고 있다",
	}
	data := models.ArticleData{
		Title:            "전세사기 피해 확산",
		Keywords:         candidate.Keywords,
		Content:          candidate.Content,
		SourceArticles:   sources,
		MainArticle:      models.MainArticle{Title: candidate.Title},
		GeneratedArticle: "전세사기 피해가 확산되고 있다",
	}
	return candidate, data
}

func TestProcessCreatesNewTopic(t *testing.T) {
	engine, _, cache, _ := newTestEngine(t)
	ctx := context.Background()

	candidate, data := submission("https://a.example.com")
	verdict, err := engine.Process(ctx, candidate, data)
	require.NoError(t, err)

	assert.Equal(t, VerdictCreate, verdict.Action)
	assert.Equal(t, 1, verdict.Version)
	assert.NotEmpty(t, verdict.TopicID)

	record, err := cache.LoadArticle(ctx, verdict.TopicID)
	require.NoError(t, err)
	assert.Equal(t, "전세사기 피해 확산", record.MainTitle)
	assert.Empty(t, record.UpdateHistory)
}

// 레코드 저장이 인덱스 투영을 덮어써도 본문 미리보기는 남아야 한다.
func TestProcessKeepsContentPreview(t *testing.T) {
	engine, versions, cache, _ := newTestEngine(t)
	ctx := context.Background()

	candidate, data := submission("https://a.example.com")
	verdict, err := engine.Process(ctx, candidate, data)
	require.NoError(t, err)

	index, err := versions.index.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, data.Content, index[verdict.TopicID].ContentPreview)

	record, err := cache.LoadArticle(ctx, verdict.TopicID)
	require.NoError(t, err)
	assert.Equal(t, data.Content, record.ContentPreview)
}

func TestProcessReusesUnchangedTopic(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	ctx := context.Background()

	candidate, data := submission("https://a.example.com")
	created, err := engine.Process(ctx, candidate, data)
	require.NoError(t, err)

	// 같은 소스 집합이 다시 들어오면 기존 기사를 재사용한다
	verdict, err := engine.Process(ctx, candidate, data)
	require.NoError(t, err)
	assert.Equal(t, VerdictReuse, verdict.Action)
	assert.Equal(t, created.TopicID, verdict.TopicID)
	assert.Equal(t, []string{"모든 소스 기사가 동일함"}, verdict.Reasons)
}

func TestProcessCreatesNewVersionOnNewSources(t *testing.T) {
	engine, versions, cache, _ := newTestEngine(t)
	ctx := context.Background()

	candidate, data := submission("https://a.example.com")
	created, err := engine.Process(ctx, candidate, data)
	require.NoError(t, err)

	candidate2, data2 := submission("https://a.example.com", "https://b.example.com")
	verdict, err := engine.Process(ctx, candidate2, data2)
	require.NoError(t, err)

	assert.Equal(t, VerdictUpdate, verdict.Action)
	assert.Equal(t, 2, verdict.Version)
	assert.NotEqual(t, created.TopicID, verdict.TopicID)
	assert.Equal(t, []string{"1개의 새로운 소스 발견"}, verdict.Reasons)

	// 새 버전 레코드에는 판정 이유가 update_history 로 남는다
	record, err := cache.LoadArticle(ctx, verdict.TopicID)
	require.NoError(t, err)
	require.Len(t, record.UpdateHistory, 1)
	assert.Equal(t, models.UpdateSummary{
		HasUpdates: true,
		Reasons:    []string{"1개의 새로운 소스 발견"},
		NewSources: []string{"https://b.example.com"},
	}, record.UpdateHistory[0].Updates)

	// 이전 버전은 그대로 남고, 체인으로 이어진다
	old, err := cache.LoadArticle(ctx, created.TopicID)
	require.NoError(t, err)
	assert.Equal(t, 1, old.Version)

	history, err := versions.GetHistory(ctx, verdict.TopicID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, verdict.TopicID, history[0].ArticleID)
	assert.Equal(t, created.TopicID, history[1].ArticleID)
}

func TestProcessRecoversFromMissingRecord(t *testing.T) {
	engine, _, _, dir := newTestEngine(t)
	ctx := context.Background()

	candidate, data := submission("https://a.example.com")
	created, err := engine.Process(ctx, candidate, data)
	require.NoError(t, err)

	// 인덱스에는 있는데 레코드 파일이 사라진 상태를 만든다
	require.NoError(t, os.Remove(filepath.Join(dir, created.TopicID+".json")))

	verdict, err := engine.Process(ctx, candidate, data)
	require.NoError(t, err)
	assert.Equal(t, VerdictCreate, verdict.Action)
	assert.Equal(t, 2, verdict.Version)
	assert.NotEqual(t, created.TopicID, verdict.TopicID)
}
