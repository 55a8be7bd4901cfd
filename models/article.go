package models

import "time"

// MainArticle 은 합성 기사의 출발점이 된 대표 기사 정보다.
type MainArticle struct {
	Title   string `bson:"title" json:"title"`
	URL     string `bson:"url,omitempty" json:"url,omitempty"`
	Content string `bson:"content,omitempty" json:"content,omitempty"`
}

// RelatedArticle 은 같은 주제를 다룬 개별 언론 기사 메타데이터다.
type RelatedArticle struct {
	Title string `bson:"title" json:"title"`
	URL   string `bson:"url" json:"url"`
	Press string `bson:"press,omitempty" json:"press,omitempty"`
}

// UpdateSummary 는 한 번의 업데이트 판정 결과 요약이다.
type UpdateSummary struct {
	HasUpdates bool     `bson:"has_updates" json:"has_updates"`
	Reasons    []string `bson:"reasons,omitempty" json:"reasons,omitempty"`
	NewSources []string `bson:"new_sources,omitempty" json:"new_sources,omitempty"`
}

// UpdateEntry 는 버전 내 업데이트 이력의 한 항목이다.
type UpdateEntry struct {
	Version   int           `bson:"version" json:"version"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
	Updates   UpdateSummary `bson:"updates" json:"updates"`
	Reason    string        `bson:"reason" json:"reason"`
}

// ArticleRecord represents the full per-version article payload
// Collection: articles / File: {topic_id}.json
//
// 인덱스 엔트리의 필드를 그대로 복제해 들고 있는 비정규화 구조다.
// 읽기 최적화를 위한 의도된 중복으로, 인덱스는 이 레코드의 투영이다.
type ArticleRecord struct {
	TopicID        string            `bson:"_id" json:"topic_id"`
	MainTitle      string            `bson:"main_title" json:"main_title"`
	GeneratedTitle string            `bson:"generated_title,omitempty" json:"generated_title,omitempty"`
	Keywords       []string          `bson:"keywords" json:"keywords"`
	Tags           TopicTags         `bson:"tags" json:"tags"`
	CreatedAt      time.Time         `bson:"created_at" json:"created_at"`
	LastUpdated    time.Time         `bson:"last_updated" json:"last_updated"`
	Version        int               `bson:"version" json:"version"`
	ParentID       string            `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	VersionHistory []VersionSnapshot `bson:"version_history" json:"version_history"`
	SourceArticles []string          `bson:"source_articles" json:"source_articles"`
	ContentPreview string            `bson:"content_preview,omitempty" json:"content_preview,omitempty"`

	MainArticle      MainArticle        `bson:"main_article" json:"main_article"`
	GeneratedArticle string             `bson:"generated_article" json:"generated_article"`
	Analysis         map[string]any     `bson:"analysis" json:"analysis"`
	RelatedArticles  []RelatedArticle   `bson:"related_articles" json:"related_articles"`
	QualityScores    map[string]float64 `bson:"quality_scores,omitempty" json:"quality_scores,omitempty"`
	UpdateHistory    []UpdateEntry      `bson:"update_history" json:"update_history"`
}

// IndexEntry 는 레코드에서 토픽 인덱스 투영을 만들어 낸다.
func (r ArticleRecord) IndexEntry() TopicIndexEntry {
	return TopicIndexEntry{
		ID:             r.TopicID,
		MainTitle:      r.MainTitle,
		GeneratedTitle: r.GeneratedTitle,
		Keywords:       r.Keywords,
		Tags:           r.Tags,
		CreatedAt:      r.CreatedAt,
		LastUpdated:    r.LastUpdated,
		Version:        r.Version,
		ParentID:       r.ParentID,
		VersionHistory: r.VersionHistory,
		SourceArticles: r.SourceArticles,
		ContentPreview: r.ContentPreview,
	}
}
