package services

import (
	"context"

	"kona/models"
)

// ListTopicsInput 토픽 목록 조회 입력
type ListTopicsInput struct {
	Page     int
	PageSize int
	Keyword  string
}

// TopicService 토픽 인덱스/레코드 조회 서비스 (읽기 전용 API 경로)
type TopicService struct {
	cache    *ArticleCache
	versions *VersionManager
}

func NewTopicService(cache *ArticleCache, versions *VersionManager) *TopicService {
	return &TopicService{cache: cache, versions: versions}
}

// List 최신 갱신순으로 정렬된 토픽 요약 목록을 페이지 단위로 반환
func (s *TopicService) List(ctx context.Context, in ListTopicsInput) ([]models.TopicIndexEntry, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 || in.PageSize > 100 {
		in.PageSize = 20
	}

	entries, err := s.cache.TopicSummaries(ctx)
	if err != nil {
		return nil, err
	}

	if in.Keyword != "" {
		filtered := make([]models.TopicIndexEntry, 0, len(entries))
		for _, entry := range entries {
			if containsKeyword(entry.Keywords, in.Keyword) {
				filtered = append(filtered, entry)
			}
		}
		entries = filtered
	}

	start := (in.Page - 1) * in.PageSize
	if start >= len(entries) {
		return []models.TopicIndexEntry{}, nil
	}
	end := start + in.PageSize
	if end > len(entries) {
		end = len(entries)
	}
	return entries[start:end], nil
}

// Get 토픽 ID로 전체 기사 레코드를 조회
func (s *TopicService) Get(ctx context.Context, topicID string) (*models.ArticleRecord, error) {
	return s.cache.LoadArticle(ctx, topicID)
}

// History 토픽의 버전 체인을 최신 버전부터 반환
func (s *TopicService) History(ctx context.Context, topicID string) ([]VersionInfo, error) {
	return s.versions.GetHistory(ctx, topicID)
}

func containsKeyword(keywords []string, keyword string) bool {
	for _, k := range keywords {
		if k == keyword {
			return true
		}
	}
	return false
}
