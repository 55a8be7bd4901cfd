package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kona/models"
)

// MongoTopicIndexStore 는 topics 컬렉션 기반 인덱스 저장소다.
// 파일 저장소와 같은 전체 덮어쓰기 계약을 유지한다: Save 는 주어진 매핑을
// 컬렉션의 새 전체 상태로 만든다.
type MongoTopicIndexStore struct {
	col *mongo.Collection
}

func NewMongoTopicIndexStore(db *mongo.Database) *MongoTopicIndexStore {
	return &MongoTopicIndexStore{col: db.Collection("topics")}
}

func (s *MongoTopicIndexStore) Load(ctx context.Context) (map[string]models.TopicIndexEntry, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to load topic index: %w", err)
	}
	defer cur.Close(ctx)

	index := map[string]models.TopicIndexEntry{}
	for cur.Next(ctx) {
		var entry models.TopicIndexEntry
		if err := cur.Decode(&entry); err != nil {
			return nil, fmt.Errorf("failed to decode topic entry: %w", err)
		}
		index[entry.ID] = entry
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return index, nil
}

func (s *MongoTopicIndexStore) Save(ctx context.Context, index map[string]models.TopicIndexEntry) error {
	ids := make([]string, 0, len(index))
	writes := make([]mongo.WriteModel, 0, len(index))
	for id, entry := range index {
		if entry.ID == "" {
			entry.ID = id
		}
		ids = append(ids, id)
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": id}).
			SetReplacement(entry).
			SetUpsert(true))
	}

	if len(writes) > 0 {
		opts := options.BulkWrite().SetOrdered(false)
		if _, err := s.col.BulkWrite(ctx, writes, opts); err != nil {
			return fmt.Errorf("failed to save topic index: %w", err)
		}
	}

	// 전체 덮어쓰기 계약: 매핑에 없는 문서는 제거한다.
	if _, err := s.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$nin": ids}}); err != nil {
		return fmt.Errorf("failed to prune topic index: %w", err)
	}
	return nil
}
