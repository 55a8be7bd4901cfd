package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	TopicCreated EventType = "topic.created"
	TopicUpdated EventType = "topic.updated"
	TopicReused  EventType = "topic.reused"
)

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// TopicCreatedEvent 새 토픽(체인 루트) 생성 이벤트
type TopicCreatedEvent struct {
	BaseEvent
	TopicID        string `json:"topic_id"`
	ArticleVersion int    `json:"article_version"`
	Title          string `json:"title"`
}

// TopicUpdatedEvent 기존 토픽의 새 버전 생성 이벤트
type TopicUpdatedEvent struct {
	BaseEvent
	TopicID        string   `json:"topic_id"`
	ParentID       string   `json:"parent_id"`
	ArticleVersion int      `json:"article_version"`
	Title          string   `json:"title"`
	Reasons        []string `json:"reasons,omitempty"`
}

// TopicReusedEvent 기존 기사 재사용(업데이트 불필요) 판정 이벤트
type TopicReusedEvent struct {
	BaseEvent
	TopicID        string   `json:"topic_id"`
	ArticleVersion int      `json:"article_version"`
	Reasons        []string `json:"reasons,omitempty"`
}

// SerializeEvent 이벤트를 JSON으로 직렬화하고 타입 정보 반환
func SerializeEvent(event interface{}) ([]byte, EventType, error) {
	var eventType EventType

	switch e := event.(type) {
	case TopicCreatedEvent:
		eventType = e.Type
	case TopicUpdatedEvent:
		eventType = e.Type
	case TopicReusedEvent:
		eventType = e.Type
	default:
		return nil, "", fmt.Errorf("unknown event type: %T", event)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal event: %w", err)
	}

	return data, eventType, nil
}

// DeserializeEvent 이벤트 타입에 따라 적절한 구조체로 역직렬화
func DeserializeEvent(eventType EventType, data []byte) (interface{}, error) {
	var event interface{}

	switch eventType {
	case TopicCreated:
		event = &TopicCreatedEvent{}
	case TopicUpdated:
		event = &TopicUpdatedEvent{}
	case TopicReused:
		event = &TopicReusedEvent{}
	default:
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	if err := json.Unmarshal(data, event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return event, nil
}
