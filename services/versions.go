package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"kona/config"
	"kona/models"
	"kona/repositories"
)

// VersionInfo 는 버전 히스토리 조회 결과의 한 항목이다.
type VersionInfo struct {
	Version   int       `json:"version"`
	ArticleID string    `json:"article_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	IsCurrent bool      `json:"is_current"`
}

// VersionManager 는 버전 체인의 생성과 조회를 담당한다.
// 체인은 append-only 다. 부모 엔트리는 절대 수정하거나 삭제하지 않는다.
type VersionManager struct {
	index repositories.TopicIndexStore
	now   func() time.Time
}

func NewVersionManager(index repositories.TopicIndexStore) *VersionManager {
	return &VersionManager{index: index, now: time.Now}
}

// CreateVersion 은 새 버전의 인덱스 엔트리를 만들어 저장하고 식별자를 반환한다.
// parentID 가 인덱스에 있으면 버전을 잇고, 부모 스냅샷을 히스토리 맨 앞에
// 붙인다. parentID 가 비어 있거나 인덱스에 없으면 새 체인의 루트(버전 1)다.
func (m *VersionManager) CreateVersion(ctx context.Context, data models.ArticleData, parentID string) (string, error) {
	index, err := m.index.Load(ctx)
	if err != nil {
		return "", err
	}

	now := m.now().UTC()
	articleID := m.generateID(index, data.Title, now)

	version := 1
	var history []models.VersionSnapshot
	if parent, ok := index[parentID]; parentID != "" && ok {
		version = parent.Version + 1
		history = make([]models.VersionSnapshot, 0, len(parent.VersionHistory)+1)
		history = append(history, models.VersionSnapshot{
			Version:   parent.Version,
			ArticleID: parentID,
			Title:     parent.MainTitle,
			CreatedAt: parent.CreatedAt,
		})
		history = append(history, parent.VersionHistory...)
	}

	entry := models.TopicIndexEntry{
		ID:             articleID,
		MainTitle:      data.Title,
		GeneratedTitle: data.GeneratedTitle,
		Keywords:       data.Keywords,
		Tags:           data.Tags,
		CreatedAt:      now,
		LastUpdated:    now,
		Version:        version,
		ParentID:       parentID,
		VersionHistory: history,
		SourceArticles: dedupStrings(data.SourceArticles),
		ContentPreview: truncateRunes(data.Content, 200),
	}

	index[articleID] = entry
	if err := m.index.Save(ctx, index); err != nil {
		return "", err
	}

	config.Logger.Infof("기사 버전 생성: %s (버전 %d)", articleID, version)
	return articleID, nil
}

// GetHistory 는 부모 포인터를 따라 전체 버전 히스토리를 재구성한다.
// 끊긴 부모나 순환 체인을 만나도 그때까지 수집한 부분 히스토리를 반환한다.
// 순회는 인덱스 크기를 상한으로 방어적으로 종료한다.
func (m *VersionManager) GetHistory(ctx context.Context, articleID string) ([]VersionInfo, error) {
	index, err := m.index.Load(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := index[articleID]; !ok {
		return []VersionInfo{}, nil
	}

	var history []VersionInfo
	visited := make(map[string]bool)
	currentID := articleID

	for currentID != "" && len(history) <= len(index) {
		entry, ok := index[currentID]
		if !ok {
			// 끊긴 부모 참조: 부분 히스토리로 종료
			config.Logger.Warnf("버전 체인에서 누락된 엔트리: %s", currentID)
			break
		}
		if visited[currentID] {
			config.Logger.Warnf("버전 체인에 순환 참조 발견: %s", currentID)
			break
		}
		visited[currentID] = true

		history = append(history, VersionInfo{
			Version:   entry.Version,
			ArticleID: currentID,
			Title:     entry.MainTitle,
			CreatedAt: entry.CreatedAt,
			IsCurrent: currentID == articleID,
		})
		currentID = entry.ParentID
	}

	// 최신 버전이 먼저
	sort.Slice(history, func(i, j int) bool {
		return history[i].Version > history[j].Version
	})
	return history, nil
}

// generateID 는 제목과 생성 시각에서 12자리 식별자를 만든다.
// 같은 제목이 같은 시각에 들어와 충돌하면 suffix 를 붙여 다시 해싱한다.
func (m *VersionManager) generateID(index map[string]models.TopicIndexEntry, title string, now time.Time) string {
	for attempt := 0; ; attempt++ {
		seed := fmt.Sprintf("%s_%s", title, now.Format(time.RFC3339Nano))
		if attempt > 0 {
			seed = fmt.Sprintf("%s_%d", seed, attempt)
		}
		sum := md5.Sum([]byte(seed))
		id := hex.EncodeToString(sum[:])[:12]
		if _, exists := index[id]; !exists {
			return id
		}
	}
}

func dedupStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func truncateRunes(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max])
}
