package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"kona/config"
	"kona/models"
)

const topicIndexFile = "topic_index.json"

// FileTopicIndexStore 는 topic_index.json 단일 파일 기반 인덱스 저장소다.
type FileTopicIndexStore struct {
	path   string
	strict bool
}

func NewFileTopicIndexStore(cacheDir string, strict bool) *FileTopicIndexStore {
	_ = os.MkdirAll(cacheDir, 0o755)
	return &FileTopicIndexStore{
		path:   filepath.Join(cacheDir, topicIndexFile),
		strict: strict,
	}
}

// Load reads the whole index. A missing file yields an empty mapping.
// 손상된 파일은 기본 정책에서는 빈 인덱스로 대체된다 (가용성 우선).
// strict 정책에서는 이력을 조용히 버리는 대신 오류를 반환한다.
func (s *FileTopicIndexStore) Load(ctx context.Context) (map[string]models.TopicIndexEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]models.TopicIndexEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read topic index: %w", err)
	}

	var index map[string]models.TopicIndexEntry
	if err := json.Unmarshal(data, &index); err != nil {
		if s.strict {
			return nil, fmt.Errorf("corrupt topic index %s: %w", s.path, err)
		}
		config.Logger.Warnf("corrupt topic index %s, treating as empty: %v", s.path, err)
		return map[string]models.TopicIndexEntry{}, nil
	}

	for id, entry := range index {
		if entry.ID == "" {
			entry.ID = id
			index[id] = entry
		}
	}
	return index, nil
}

// Save overwrites the whole index file with the given mapping.
func (s *FileTopicIndexStore) Save(ctx context.Context, index map[string]models.TopicIndexEntry) error {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal topic index: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write topic index: %w", err)
	}
	return nil
}
