package models

import "time"

// TopicTags holds classification tags for a topic
//
//	category_tags: 고정 카테고리 어휘에서 최대 2개
//	content_tags: 자유 형식 태그
type TopicTags struct {
	CategoryTags []string `bson:"category_tags" json:"category_tags"`
	ContentTags  []string `bson:"content_tags" json:"content_tags"`
}

// VersionSnapshot 은 버전 체인의 한 조상 버전에 대한 요약이다.
type VersionSnapshot struct {
	Version   int       `bson:"version" json:"version"`
	ArticleID string    `bson:"article_id" json:"article_id"`
	Title     string    `bson:"title" json:"title"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// TopicIndexEntry represents the lightweight index projection of a topic
// Collection: topics / File: topic_index.json
//
// SourceArticles 는 버전 간 동일 주제 판별의 기준이 되는 소스 URL 목록이다.
type TopicIndexEntry struct {
	ID             string            `bson:"_id" json:"topic_id"`
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
}

// DisplayTitle returns the AI-authored title when present, else the main title.
func (e TopicIndexEntry) DisplayTitle() string {
	if e.GeneratedTitle != "" {
		return e.GeneratedTitle
	}
	return e.MainTitle
}

// IsRoot reports whether this entry is the first version of its chain.
func (e TopicIndexEntry) IsRoot() bool {
	return e.ParentID == ""
}
