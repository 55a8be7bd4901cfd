package dto

import (
	"time"

	"kona/models"
	"kona/services"
)

// TopicSummaryDTO exposes the index-level fields needed for list views.
// Heavy payloads (generated article body, analysis) stay behind the detail endpoint.
type TopicSummaryDTO struct {
	TopicID        string    `json:"topic_id"`
	Title          string    `json:"title"`
	Keywords       []string  `json:"keywords"`
	CategoryTags   []string  `json:"category_tags"`
	ContentTags    []string  `json:"content_tags"`
	Version        int       `json:"version"`
	ParentID       string    `json:"parent_id,omitempty"`
	SourceCount    int       `json:"source_count"`
	CreatedAt      time.Time `json:"created_at"`
	LastUpdated    time.Time `json:"last_updated"`
	ContentPreview string    `json:"content_preview,omitempty"`
}

// NewTopicSummaryDTO constructs TopicSummaryDTO from an index entry
func NewTopicSummaryDTO(e models.TopicIndexEntry) TopicSummaryDTO {
	return TopicSummaryDTO{
		TopicID:        e.ID,
		Title:          e.DisplayTitle(),
		Keywords:       e.Keywords,
		CategoryTags:   e.Tags.CategoryTags,
		ContentTags:    e.Tags.ContentTags,
		Version:        e.Version,
		ParentID:       e.ParentID,
		SourceCount:    len(e.SourceArticles),
		CreatedAt:      e.CreatedAt,
		LastUpdated:    e.LastUpdated,
		ContentPreview: e.ContentPreview,
	}
}

// TopicDetailDTO flattens the full article record for API consumers
type TopicDetailDTO struct {
	TopicID          string                 `json:"topic_id"`
	Title            string                 `json:"title"`
	GeneratedTitle   string                 `json:"generated_title,omitempty"`
	Keywords         []string               `json:"keywords"`
	CategoryTags     []string               `json:"category_tags"`
	ContentTags      []string               `json:"content_tags"`
	Version          int                    `json:"version"`
	ParentID         string                 `json:"parent_id,omitempty"`
	SourceArticles   []string               `json:"source_articles"`
	CreatedAt        time.Time              `json:"created_at"`
	LastUpdated      time.Time              `json:"last_updated"`
	GeneratedArticle string                 `json:"generated_article"`
	Analysis         map[string]any         `json:"analysis,omitempty"`
	UpdateHistory    []models.UpdateEntry   `json:"update_history"`
	RelatedArticles  []models.RelatedArticle `json:"related_articles,omitempty"`
}

// NewTopicDetailDTO constructs TopicDetailDTO from a cached record
func NewTopicDetailDTO(r models.ArticleRecord) TopicDetailDTO {
	return TopicDetailDTO{
		TopicID:          r.TopicID,
		Title:            r.MainTitle,
		GeneratedTitle:   r.GeneratedTitle,
		Keywords:         r.Keywords,
		CategoryTags:     r.Tags.CategoryTags,
		ContentTags:      r.Tags.ContentTags,
		Version:          r.Version,
		ParentID:         r.ParentID,
		SourceArticles:   r.SourceArticles,
		CreatedAt:        r.CreatedAt,
		LastUpdated:      r.LastUpdated,
		GeneratedArticle: r.GeneratedArticle,
		Analysis:         r.Analysis,
		UpdateHistory:    r.UpdateHistory,
		RelatedArticles:  r.RelatedArticles,
	}
}

// VersionDTO is a single step of a version chain, newest first
type VersionDTO struct {
	Version   int       `json:"version"`
	ArticleID string    `json:"article_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	IsCurrent bool      `json:"is_current"`
}

// NewVersionDTO constructs VersionDTO from version chain info
func NewVersionDTO(v services.VersionInfo) VersionDTO {
	return VersionDTO{
		Version:   v.Version,
		ArticleID: v.ArticleID,
		Title:     v.Title,
		CreatedAt: v.CreatedAt,
		IsCurrent: v.IsCurrent,
	}
}
