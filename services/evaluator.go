package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"kona/config"
	"kona/models"
	"kona/similarity"
)

// UpdateDecision 은 기존 기사에 대한 업데이트 필요성 판정 결과다.
type UpdateDecision struct {
	NeedsUpdate bool
	Reasons     []string
	NewSources  []string
}

// Summary 는 update_history 에 기록할 요약 형태로 변환한다.
func (d UpdateDecision) Summary() models.UpdateSummary {
	return models.UpdateSummary{
		HasUpdates: d.NeedsUpdate,
		Reasons:    d.Reasons,
		NewSources: d.NewSources,
	}
}

// statusKeywords 는 사건 전개를 뜻하는 상태 변경 어휘다.
var statusKeywords = []string{"확정", "철회", "취소", "결정", "발표", "사망", "실종", "증가", "감소"}

var numberRegex = regexp.MustCompile(`\d+`)

// Evaluator 는 매칭된 기존 토픽이 새 정보 대비 낡았는지 판정한다.
// 입력과 주입된 시계에만 의존하는 순수 판정이다.
type Evaluator struct {
	extractor          similarity.EntityExtractor
	staleAfter         time.Duration
	regenerateAfter    time.Duration
	significantUpdates int
	now                func() time.Time
}

func NewEvaluator(extractor similarity.EntityExtractor, cfg config.UpdatePolicyConfig) *Evaluator {
	return &Evaluator{
		extractor:          extractor,
		staleAfter:         time.Duration(cfg.StaleHours) * time.Hour,
		regenerateAfter:    time.Duration(cfg.RegenerateHours) * time.Hour,
		significantUpdates: cfg.SignificantUpdates,
		now:                time.Now,
	}
}

// NeedsUpdate 는 판정 순서대로 평가한다:
//  1. 소스 집합 비교 (양쪽 모두 있을 때, 결정적·단락 평가)
//  2. 본문 휴리스틱 (모든 해당 사유를 누적)
func (e *Evaluator) NeedsUpdate(existing *models.ArticleRecord, candidate models.CandidateTopic) UpdateDecision {
	if len(existing.SourceArticles) > 0 && len(candidate.SourceURLs) > 0 {
		return e.compareSources(existing.SourceArticles, candidate.SourceURLs)
	}
	return e.compareContent(existing, candidate)
}

// compareSources 는 소스 URL 집합을 비교한다. 중복과 순서는 무시한다.
func (e *Evaluator) compareSources(existingSources, newSources []string) UpdateDecision {
	existingSet := toStringSet(existingSources)
	newSet := toStringSet(newSources)

	if setsEqual(existingSet, newSet) {
		return UpdateDecision{
			NeedsUpdate: false,
			Reasons:     []string{"모든 소스 기사가 동일함"},
		}
	}

	var newOnly []string
	for url := range newSet {
		if !existingSet[url] {
			newOnly = append(newOnly, url)
		}
	}
	if len(newOnly) > 0 {
		sort.Strings(newOnly)
		return UpdateDecision{
			NeedsUpdate: true,
			Reasons:     []string{fmt.Sprintf("%d개의 새로운 소스 발견", len(newOnly))},
			NewSources:  newOnly,
		}
	}

	// 소스가 줄어든 경우 (일반적으로 발생하지 않음)
	return UpdateDecision{
		NeedsUpdate: false,
		Reasons:     []string{"기존 소스의 부분집합"},
	}
}

// compareContent 는 소스 비교가 불가능할 때의 본문 휴리스틱이다.
func (e *Evaluator) compareContent(existing *models.ArticleRecord, candidate models.CandidateTopic) UpdateDecision {
	var reasons []string

	existingContent := existing.GeneratedArticle
	if existingContent == "" {
		existingContent = existing.MainArticle.Content
	}

	// 1. 주요 수치 변경 확인
	existingNumbers := toStringSet(numberRegex.FindAllString(existingContent, -1))
	newNumbers := toStringSet(numberRegex.FindAllString(candidate.Content, -1))
	if !setsEqual(existingNumbers, newNumbers) {
		reasons = append(reasons, "주요 수치 변경")
	}

	// 2. 새로운 인물/조직 등장
	existingEntities := toStringSet(e.extractor.Extract(existing.MainTitle, existingContent))
	var added []string
	for _, entity := range e.extractor.Extract(candidate.Title, candidate.Content) {
		if !existingEntities[entity] {
			added = append(added, entity)
		}
	}
	if len(added) > 0 {
		sort.Strings(added)
		reasons = append(reasons, fmt.Sprintf("새로운 주요 인물/조직: %s", strings.Join(added, ", ")))
	}

	// 3. 주요 상태 변경 키워드
	for _, keyword := range statusKeywords {
		if strings.Contains(candidate.Content, keyword) && !strings.Contains(existingContent, keyword) {
			reasons = append(reasons, fmt.Sprintf("상태 변경: %s", keyword))
		}
	}

	// 4. 시간 경과 확인
	if !existing.CreatedAt.IsZero() && e.now().Sub(existing.CreatedAt) > e.staleAfter {
		reasons = append(reasons, fmt.Sprintf("%d시간 이상 경과", int(e.staleAfter.Hours())))
	}

	return UpdateDecision{
		NeedsUpdate: len(reasons) > 0,
		Reasons:     reasons,
	}
}

// ShouldRegenerate 는 내용과 무관한 재생성 정책이다.
// 마지막 갱신 후 임계 시간이 지났거나, 실질 업데이트가 기준 횟수 이상
// 누적된(아직도 전개 중인 사건이라는 신호) 기사는 재생성 대상이다.
func (e *Evaluator) ShouldRegenerate(record *models.ArticleRecord) bool {
	if e.now().Sub(record.LastUpdated) > e.regenerateAfter {
		return true
	}

	significant := 0
	for _, entry := range record.UpdateHistory {
		if entry.Updates.HasUpdates {
			significant++
		}
	}
	return significant >= e.significantUpdates
}

func toStringSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = true
		}
	}
	return set
}

func setsEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for v := range a {
		if !b[v] {
			return false
		}
	}
	return true
}
