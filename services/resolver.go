package services

import (
	"context"
	"sort"

	"kona/config"
	"kona/models"
	"kona/repositories"
	"kona/similarity"
)

// Resolver 는 새 후보 주제가 이미 추적 중인 토픽인지 판별한다.
type Resolver struct {
	index        repositories.TopicIndexStore
	extractor    similarity.EntityExtractor
	weights      similarity.Weights
	cacheWeights similarity.CacheWeights
	threshold    float64
}

func NewResolver(index repositories.TopicIndexStore, extractor similarity.EntityExtractor, cfg config.SimilarityConfig) *Resolver {
	return &Resolver{
		index:     index,
		extractor: extractor,
		weights: similarity.Weights{
			Entity:    cfg.EntityWeight,
			Keyword:   cfg.KeywordWeight,
			TitleWord: cfg.TitleWordWeight,
		},
		cacheWeights: similarity.CacheWeights{
			Title:   cfg.CacheTitleWeight,
			Keyword: cfg.CacheKeywordWeight,
		},
		threshold: cfg.Threshold,
	}
}

// FindMatch 는 소스 기사 URL 기반으로만 기존 토픽을 찾는다.
// 소스 URL 이 하나라도 겹치면 같은 실제 사건을 다룬 것으로 간주한다.
// 제목/키워드 휴리스틱은 오탐을 피하기 위해 매칭 결정에는 쓰지 않는다
// (진단용으로는 FindSimilar 로 남겨 둔다).
func (r *Resolver) FindMatch(ctx context.Context, candidate models.CandidateTopic) (string, bool, error) {
	if len(candidate.SourceURLs) == 0 {
		return "", false, nil
	}

	index, err := r.index.Load(ctx)
	if err != nil {
		return "", false, err
	}

	newSources := make(map[string]bool, len(candidate.SourceURLs))
	for _, url := range candidate.SourceURLs {
		newSources[url] = true
	}

	// 맵 순회 순서에 따라 결과가 흔들리지 않도록 식별자 순으로 스캔한다.
	ids := make([]string, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		shared := 0
		for _, url := range index[id].SourceArticles {
			if newSources[url] {
				shared++
			}
		}
		if shared > 0 {
			// 점수는 진단용 로그일 뿐, 매칭 결정에는 관여하지 않는다
			config.Logger.Infof("소스 기반 매칭: %s (%d개 공통 소스, 내용 유사도 %.2f)",
				id, shared, r.Similarity(candidate, index[id]))
			return id, true, nil
		}
	}

	return "", false, nil
}

// FindSimilar 는 제목/키워드 유사도로 가장 비슷한 기존 토픽을 찾는다.
// 매칭 결정이 아닌 보조/진단 용도다. 임계값 미달이면 ok=false 를 반환한다.
func (r *Resolver) FindSimilar(ctx context.Context, title string, keywords []string) (string, float64, bool, error) {
	index, err := r.index.Load(ctx)
	if err != nil {
		return "", 0, false, err
	}

	bestID := ""
	bestScore := 0.0
	for id, entry := range index {
		score := similarity.CacheScore(title, entry.MainTitle, keywords, entry.Keywords, r.cacheWeights)
		if score > bestScore || (score == bestScore && (bestID == "" || id < bestID)) {
			bestID = id
			bestScore = score
		}
	}

	if bestID == "" || bestScore < r.threshold {
		return "", bestScore, false, nil
	}
	config.Logger.Infof("유사한 기존 기사 발견: %s (유사도: %.2f)", bestID, bestScore)
	return bestID, bestScore, true, nil
}

// Similarity 는 후보와 기존 엔트리의 개체 중심 종합 유사도를 계산한다.
func (r *Resolver) Similarity(candidate models.CandidateTopic, entry models.TopicIndexEntry) float64 {
	candidateEntities := r.extractor.Extract(candidate.Title, candidate.Content)
	entryEntities := r.extractor.Extract(entry.MainTitle, entry.ContentPreview)
	return similarity.Score(
		candidate.Title, entry.MainTitle,
		candidate.Keywords, entry.Keywords,
		candidateEntities, entryEntities,
		r.weights,
	)
}
