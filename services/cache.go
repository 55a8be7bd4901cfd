package services

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"kona/config"
	"kona/models"
	"kona/repositories"
)

var markdownTitleRegex = regexp.MustCompile(`(?m)^#\s+(.+?)\s*$`)

// ArticleCache 는 기사 레코드와 토픽 인덱스 투영의 저장을 담당한다.
// 레코드가 원본이고 인덱스 엔트리는 그 투영이다. 두 저장소는 항상
// 레코드 저장 직후 함께 갱신된다.
type ArticleCache struct {
	index    repositories.TopicIndexStore
	articles repositories.ArticleStore
	now      func() time.Time
}

func NewArticleCache(index repositories.TopicIndexStore, articles repositories.ArticleStore) *ArticleCache {
	return &ArticleCache{index: index, articles: articles, now: time.Now}
}

// SaveArticle 은 레코드를 저장하고 인덱스 투영을 갱신한다.
// 합성 기사 본문에 마크다운 제목이 있으면 그것을 표시 제목으로 쓴다.
func (c *ArticleCache) SaveArticle(ctx context.Context, record *models.ArticleRecord) error {
	now := c.now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.LastUpdated = now
	if record.Version == 0 {
		record.Version = 1
	}
	if m := markdownTitleRegex.FindStringSubmatch(record.GeneratedArticle); m != nil {
		record.MainTitle = strings.TrimSpace(m[1])
	}
	if record.MainTitle == "" {
		record.MainTitle = record.MainArticle.Title
	}
	record.SourceArticles = dedupStrings(record.SourceArticles)

	if err := c.articles.Save(ctx, record.TopicID, record); err != nil {
		return err
	}

	index, err := c.index.Load(ctx)
	if err != nil {
		return err
	}
	index[record.TopicID] = record.IndexEntry()
	if err := c.index.Save(ctx, index); err != nil {
		return err
	}

	config.Logger.Infof("기사 캐시 저장 완료: %s (버전 %d)", record.TopicID, record.Version)
	return nil
}

// LoadArticle 은 식별자로 레코드를 읽는다. 없으면 repositories.ErrNotFound.
func (c *ArticleCache) LoadArticle(ctx context.Context, topicID string) (*models.ArticleRecord, error) {
	return c.articles.Load(ctx, topicID)
}

// UpdateArticle 은 기존 레코드에 업데이트를 반영한다: 버전 증가,
// update_history 추가, 분석 결과 병합. 저장소 수준 병합은 없다 —
// 여기서 병합을 끝낸 뒤 전체를 덮어쓴다.
func (c *ArticleCache) UpdateArticle(ctx context.Context, topicID string, updates models.UpdateSummary, newAnalysis map[string]any) (*models.ArticleRecord, error) {
	record, err := c.articles.Load(ctx, topicID)
	if err != nil {
		return nil, err
	}

	now := c.now().UTC()
	record.Version++
	record.LastUpdated = now

	reason := "new_information"
	if len(updates.Reasons) > 0 {
		reason = updates.Reasons[0]
	}
	record.UpdateHistory = append(record.UpdateHistory, models.UpdateEntry{
		Version:   record.Version,
		UpdatedAt: now,
		Updates:   updates,
		Reason:    reason,
	})

	if len(newAnalysis) > 0 {
		record.Analysis = mergeAnalysis(record.Analysis, newAnalysis)
	}

	if err := c.articles.Save(ctx, topicID, record); err != nil {
		return nil, err
	}

	index, err := c.index.Load(ctx)
	if err != nil {
		return nil, err
	}
	if entry, ok := index[topicID]; ok {
		entry.Version = record.Version
		entry.LastUpdated = record.LastUpdated
		index[topicID] = entry
		if err := c.index.Save(ctx, index); err != nil {
			return nil, err
		}
	}

	config.Logger.Infof("기사 업데이트 완료: %s (버전 %d)", topicID, record.Version)
	return record, nil
}

// TopicSummaries 는 인덱스 엔트리를 최신 갱신 순으로 반환한다.
func (c *ArticleCache) TopicSummaries(ctx context.Context) ([]models.TopicIndexEntry, error) {
	index, err := c.index.Load(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.TopicIndexEntry, 0, len(index))
	for _, entry := range index {
		summaries = append(summaries, entry)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].LastUpdated.Equal(summaries[j].LastUpdated) {
			return summaries[i].ID < summaries[j].ID
		}
		return summaries[i].LastUpdated.After(summaries[j].LastUpdated)
	})
	return summaries, nil
}

// mergeAnalysis 는 분석 페이로드를 키 단위로 병합한다.
// 리스트는 이어 붙이고, 맵은 키를 덮어쓰며, 그 외 값은 교체한다.
func mergeAnalysis(existing, incoming map[string]any) map[string]any {
	if existing == nil {
		existing = map[string]any{}
	}
	for key, value := range incoming {
		current, ok := existing[key]
		if !ok {
			existing[key] = value
			continue
		}
		switch newVal := value.(type) {
		case []any:
			if curList, ok := current.([]any); ok {
				existing[key] = append(curList, newVal...)
			} else {
				existing[key] = value
			}
		case map[string]any:
			if curMap, ok := current.(map[string]any); ok {
				for k, v := range newVal {
					curMap[k] = v
				}
			} else {
				existing[key] = value
			}
		default:
			existing[key] = value
		}
	}
	return existing
}
