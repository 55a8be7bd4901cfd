package services

import (
	"context"
	"errors"

	"kona/config"
	"kona/models"
	"kona/repositories"
)

// VerdictAction 은 후보 주제에 대한 최종 처리 결정이다.
type VerdictAction string

const (
	VerdictCreate VerdictAction = "create"
	VerdictUpdate VerdictAction = "update"
	VerdictReuse  VerdictAction = "reuse"
)

// Verdict 는 렌더링/배포 협력자가 소비하는 판정 결과다.
type Verdict struct {
	Action  VerdictAction `json:"action"`
	TopicID string        `json:"topic_id"`
	Version int           `json:"version"`
	Title   string        `json:"title"`
	Reasons []string      `json:"reasons,omitempty"`
}

// Engine 은 후보 주제 하나에 대한 전체 판정 흐름을 조율한다:
// 식별 → 업데이트 필요성 평가 → 생성/업데이트/재사용.
type Engine struct {
	resolver  *Resolver
	evaluator *Evaluator
	versions  *VersionManager
	cache     *ArticleCache
	events    *EventService
}

func NewEngine(resolver *Resolver, evaluator *Evaluator, versions *VersionManager, cache *ArticleCache, events *EventService) *Engine {
	return &Engine{
		resolver:  resolver,
		evaluator: evaluator,
		versions:  versions,
		cache:     cache,
		events:    events,
	}
}

// Process 는 후보 주제와 생성된 기사 페이로드를 받아 판정을 내린다.
func (e *Engine) Process(ctx context.Context, candidate models.CandidateTopic, data models.ArticleData) (*Verdict, error) {
	matchID, matched, err := e.resolver.FindMatch(ctx, candidate)
	if err != nil {
		return nil, err
	}

	if !matched {
		return e.createTopic(ctx, data, "", nil)
	}

	existing, err := e.cache.LoadArticle(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// 인덱스에는 있는데 레코드가 없는 상태: 체인을 이어 새 버전으로 복구
			config.Logger.Warnf("인덱스 엔트리 %s의 레코드가 없음, 새 버전으로 복구", matchID)
			return e.createTopic(ctx, data, matchID, nil)
		}
		return nil, err
	}

	decision := e.evaluator.NeedsUpdate(existing, candidate)
	if !decision.NeedsUpdate {
		if e.evaluator.ShouldRegenerate(existing) {
			config.Logger.Infof("재생성 권고: %s (마지막 갱신 후 임계 시간 경과 또는 업데이트 누적)", matchID)
		}
		verdict := &Verdict{
			Action:  VerdictReuse,
			TopicID: matchID,
			Version: existing.Version,
			Title:   existing.MainTitle,
			Reasons: decision.Reasons,
		}
		e.publish(ctx, verdict, "")
		return verdict, nil
	}

	return e.createTopic(ctx, data, matchID, &decision)
}

// createTopic 은 새 버전을 만들고 레코드/인덱스 양쪽을 채운다.
// parentID 가 비어 있으면 새 체인의 루트다.
func (e *Engine) createTopic(ctx context.Context, data models.ArticleData, parentID string, decision *UpdateDecision) (*Verdict, error) {
	topicID, err := e.versions.CreateVersion(ctx, data, parentID)
	if err != nil {
		return nil, err
	}

	index, err := e.versions.index.Load(ctx)
	if err != nil {
		return nil, err
	}
	entry := index[topicID]

	record := &models.ArticleRecord{
		TopicID:          topicID,
		MainTitle:        entry.MainTitle,
		GeneratedTitle:   entry.GeneratedTitle,
		Keywords:         entry.Keywords,
		Tags:             entry.Tags,
		CreatedAt:        entry.CreatedAt,
		LastUpdated:      entry.LastUpdated,
		Version:          entry.Version,
		ParentID:         entry.ParentID,
		VersionHistory:   entry.VersionHistory,
		SourceArticles:   entry.SourceArticles,
		ContentPreview:   entry.ContentPreview,
		MainArticle:      data.MainArticle,
		GeneratedArticle: data.GeneratedArticle,
		Analysis:         data.Analysis,
		RelatedArticles:  data.RelatedArticles,
		UpdateHistory:    []models.UpdateEntry{},
	}
	if decision != nil {
		record.UpdateHistory = append(record.UpdateHistory, models.UpdateEntry{
			Version:   entry.Version,
			UpdatedAt: entry.LastUpdated,
			Updates:   decision.Summary(),
			Reason:    firstOr(decision.Reasons, "new_information"),
		})
	}

	if err := e.cache.SaveArticle(ctx, record); err != nil {
		return nil, err
	}

	verdict := &Verdict{
		Action:  VerdictCreate,
		TopicID: topicID,
		Version: entry.Version,
		Title:   record.MainTitle,
	}
	if decision != nil {
		verdict.Action = VerdictUpdate
		verdict.Reasons = decision.Reasons
	}
	e.publish(ctx, verdict, parentID)
	return verdict, nil
}

// publish 는 판정 이벤트를 발행한다. 발행 실패는 판정 자체를 막지 않는다.
func (e *Engine) publish(ctx context.Context, verdict *Verdict, parentID string) {
	if e.events == nil {
		return
	}
	var err error
	switch verdict.Action {
	case VerdictCreate:
		err = e.events.PublishTopicCreated(ctx, verdict)
	case VerdictUpdate:
		err = e.events.PublishTopicUpdated(ctx, verdict, parentID)
	case VerdictReuse:
		err = e.events.PublishTopicReused(ctx, verdict)
	}
	if err != nil {
		config.Logger.Errorf("판정 이벤트 발행 실패 (%s, %s): %v", verdict.Action, verdict.TopicID, err)
	}
}

func firstOr(values []string, fallback string) string {
	if len(values) > 0 {
		return values[0]
	}
	return fallback
}
