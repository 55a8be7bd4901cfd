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

func newTestVersionManager(t *testing.T) *VersionManager {
	t.Helper()
	return NewVersionManager(repositories.NewFileTopicIndexStore(t.TempDir(), false))
}

func TestCreateVersionRoot(t *testing.T) {
	m := newTestVersionManager(t)
	ctx := context.Background()

	id, err := m.CreateVersion(ctx, models.ArticleData{
		Title:          "전세사기 피해 확산",
		Keywords:       []string{"전세사기"},
		Content:        "본문",
		SourceArticles: []string{"https://a.example.com", "https://a.example.com"},
	}, "")
	require.NoError(t, err)
	assert.Len(t, id, 12)

	index, err := m.index.Load(ctx)
	require.NoError(t, err)
	entry := index[id]
	assert.Equal(t, 1, entry.Version)
	assert.True(t, entry.IsRoot())
	assert.Empty(t, entry.VersionHistory)
	// 소스 URL 중복은 제거된다
	assert.Equal(t, []string{"https://a.example.com"}, entry.SourceArticles)
}

func TestCreateVersionChain(t *testing.T) {
	m := newTestVersionManager(t)
	ctx := context.Background()

	rootID, err := m.CreateVersion(ctx, models.ArticleData{Title: "1보"}, "")
	require.NoError(t, err)
	childID, err := m.CreateVersion(ctx, models.ArticleData{Title: "2보"}, rootID)
	require.NoError(t, err)
	grandID, err := m.CreateVersion(ctx, models.ArticleData{Title: "3보"}, childID)
	require.NoError(t, err)

	index, err := m.index.Load(ctx)
	require.NoError(t, err)

	// 부모 엔트리는 절대 수정되지 않는다
	root := index[rootID]
	assert.Equal(t, 1, root.Version)
	assert.Empty(t, root.VersionHistory)
	assert.Equal(t, "1보", root.MainTitle)

	child := index[childID]
	assert.Equal(t, 2, child.Version)
	assert.Equal(t, rootID, child.ParentID)
	require.Len(t, child.VersionHistory, 1)
	assert.Equal(t, rootID, child.VersionHistory[0].ArticleID)

	// 손자 히스토리는 부모 스냅샷 하나에 부모의 히스토리가 이어진다
	grand := index[grandID]
	assert.Equal(t, 3, grand.Version)
	require.Len(t, grand.VersionHistory, 2)
	assert.Equal(t, childID, grand.VersionHistory[0].ArticleID)
	assert.Equal(t, 2, grand.VersionHistory[0].Version)
	assert.Equal(t, rootID, grand.VersionHistory[1].ArticleID)
}

func TestCreateVersionUnknownParentStartsNewChain(t *testing.T) {
	m := newTestVersionManager(t)
	ctx := context.Background()

	id, err := m.CreateVersion(ctx, models.ArticleData{Title: "속보"}, "missing00000")
	require.NoError(t, err)

	index, err := m.index.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, index[id].Version)
	assert.Empty(t, index[id].VersionHistory)
}

func TestGenerateIDCollision(t *testing.T) {
	m := newTestVersionManager(t)
	fixed := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }
	ctx := context.Background()

	// 같은 제목이 같은 시각에 들어와도 식별자는 달라야 한다
	first, err := m.CreateVersion(ctx, models.ArticleData{Title: "동일 제목"}, "")
	require.NoError(t, err)
	second, err := m.CreateVersion(ctx, models.ArticleData{Title: "동일 제목"}, "")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestGetHistoryNewestFirst(t *testing.T) {
	m := newTestVersionManager(t)
	ctx := context.Background()

	rootID, _ := m.CreateVersion(ctx, models.ArticleData{Title: "1보"}, "")
	childID, _ := m.CreateVersion(ctx, models.ArticleData{Title: "2보"}, rootID)
	grandID, _ := m.CreateVersion(ctx, models.ArticleData{Title: "3보"}, childID)

	history, err := m.GetHistory(ctx, grandID)
	require.NoError(t, err)
	require.Len(t, history, 3)

	// 버전 내림차순, 현재 버전 표시는 정확히 하나
	assert.Equal(t, []int{3, 2, 1}, []int{history[0].Version, history[1].Version, history[2].Version})
	currents := 0
	for _, v := range history {
		if v.IsCurrent {
			currents++
			assert.Equal(t, grandID, v.ArticleID)
		}
	}
	assert.Equal(t, 1, currents)
}

func TestGetHistoryUnknownID(t *testing.T) {
	m := newTestVersionManager(t)

	history, err := m.GetHistory(context.Background(), "missing00000")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestGetHistoryDanglingParent(t *testing.T) {
	store := repositories.NewFileTopicIndexStore(t.TempDir(), false)
	m := NewVersionManager(store)
	ctx := context.Background()

	// 부모가 인덱스에서 사라진 엔트리
	require.NoError(t, store.Save(ctx, map[string]models.TopicIndexEntry{
		"aaaaaaaaaaaa": {ID: "aaaaaaaaaaaa", MainTitle: "고아 버전", Version: 3, ParentID: "gone00000000"},
	}))

	history, err := m.GetHistory(ctx, "aaaaaaaaaaaa")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "aaaaaaaaaaaa", history[0].ArticleID)
	assert.True(t, history[0].IsCurrent)
}

func TestGetHistoryCyclicChain(t *testing.T) {
	store := repositories.NewFileTopicIndexStore(t.TempDir(), false)
	m := NewVersionManager(store)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, map[string]models.TopicIndexEntry{
		"aaaaaaaaaaaa": {ID: "aaaaaaaaaaaa", Version: 2, ParentID: "bbbbbbbbbbbb"},
		"bbbbbbbbbbbb": {ID: "bbbbbbbbbbbb", Version: 1, ParentID: "aaaaaaaaaaaa"},
	}))

	history, err := m.GetHistory(ctx, "aaaaaaaaaaaa")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
