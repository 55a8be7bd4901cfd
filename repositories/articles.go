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

// FileArticleStore 는 토픽 식별자당 JSON 파일 하나를 쓰는 기사 저장소다.
type FileArticleStore struct {
	dir    string
	strict bool
}

func NewFileArticleStore(cacheDir string, strict bool) *FileArticleStore {
	_ = os.MkdirAll(cacheDir, 0o755)
	return &FileArticleStore{dir: cacheDir, strict: strict}
}

func (s *FileArticleStore) recordPath(topicID string) string {
	return filepath.Join(s.dir, topicID+".json")
}

// Load returns ErrNotFound for an absent identifier.
func (s *FileArticleStore) Load(ctx context.Context, topicID string) (*models.ArticleRecord, error) {
	data, err := os.ReadFile(s.recordPath(topicID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read article %s: %w", topicID, err)
	}

	var record models.ArticleRecord
	if err := json.Unmarshal(data, &record); err != nil {
		if s.strict {
			return nil, fmt.Errorf("corrupt article record %s: %w", topicID, err)
		}
		config.Logger.Warnf("corrupt article record %s, treating as missing: %v", topicID, err)
		return nil, ErrNotFound
	}
	if record.TopicID == "" {
		record.TopicID = topicID
	}
	return &record, nil
}

// Save overwrites the full record file.
func (s *FileArticleStore) Save(ctx context.Context, topicID string, record *models.ArticleRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal article %s: %w", topicID, err)
	}
	if err := os.WriteFile(s.recordPath(topicID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write article %s: %w", topicID, err)
	}
	return nil
}
