package repositories

import (
	"context"
	"errors"

	"kona/models"
)

// ErrNotFound 는 요청한 식별자가 저장소에 없을 때 반환된다.
// 새 토픽 생성 경로를 알리는 정상적인 신호이며, 호출자는 errors.Is 로 구분한다.
var ErrNotFound = errors.New("record not found")

// TopicIndexStore 는 토픽 인덱스 전체 매핑의 적재/저장을 담당한다.
// Save 는 항상 전체 매핑을 통째로 덮어쓴다 (부분 쓰기 없음).
// 동시 접근은 보호하지 않는다. 시스템 전역에서 쓰기 주체는 항상 하나라는
// 단일 프로세스 배치 가정 위에서 동작한다.
type TopicIndexStore interface {
	Load(ctx context.Context) (map[string]models.TopicIndexEntry, error)
	Save(ctx context.Context, index map[string]models.TopicIndexEntry) error
}

// ArticleStore 는 버전별 기사 레코드의 적재/저장을 담당한다.
// Load 는 없는 식별자에 대해 ErrNotFound 를 반환한다.
// Save 는 레코드 전체를 덮어쓴다. 병합은 저장 이전에 호출자가 끝낸다.
type ArticleStore interface {
	Load(ctx context.Context, topicID string) (*models.ArticleRecord, error)
	Save(ctx context.Context, topicID string, record *models.ArticleRecord) error
}
