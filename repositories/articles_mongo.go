package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kona/models"
)

// MongoArticleStore 는 articles 컬렉션 기반 기사 레코드 저장소다.
type MongoArticleStore struct {
	col *mongo.Collection
}

func NewMongoArticleStore(db *mongo.Database) *MongoArticleStore {
	return &MongoArticleStore{col: db.Collection("articles")}
}

func (s *MongoArticleStore) Load(ctx context.Context, topicID string) (*models.ArticleRecord, error) {
	var record models.ArticleRecord
	if err := s.col.FindOne(ctx, bson.M{"_id": topicID}).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load article %s: %w", topicID, err)
	}
	return &record, nil
}

func (s *MongoArticleStore) Save(ctx context.Context, topicID string, record *models.ArticleRecord) error {
	if record.TopicID == "" {
		record.TopicID = topicID
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.col.ReplaceOne(ctx, bson.M{"_id": topicID}, record, opts); err != nil {
		return fmt.Errorf("failed to save article %s: %w", topicID, err)
	}
	return nil
}
