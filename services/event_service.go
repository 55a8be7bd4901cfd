package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"kona/config"
	"kona/events"
	"kona/kafka"
)

// EventService 판정 이벤트 발행 서비스
type EventService struct {
	producer kafka.Producer
}

// NewEventService 새로운 이벤트 서비스 생성
func NewEventService(producer kafka.Producer) *EventService {
	return &EventService{producer: producer}
}

func (s *EventService) baseEvent(eventType events.EventType) events.BaseEvent {
	return events.BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "engine",
		Version:   "1.0",
	}
}

// PublishTopicCreated 새 토픽 생성 이벤트 발행
func (s *EventService) PublishTopicCreated(ctx context.Context, verdict *Verdict) error {
	event := events.TopicCreatedEvent{
		BaseEvent:      s.baseEvent(events.TopicCreated),
		TopicID:        verdict.TopicID,
		ArticleVersion: verdict.Version,
		Title:          verdict.Title,
	}

	if err := s.producer.PublishEvent(ctx, kafka.TopicTopicEvents, event); err != nil {
		return err
	}

	config.Logger.Infof("토픽 생성 이벤트 발행: %s", verdict.TopicID)
	return nil
}

// PublishTopicUpdated 토픽 업데이트(새 버전) 이벤트 발행
func (s *EventService) PublishTopicUpdated(ctx context.Context, verdict *Verdict, parentID string) error {
	event := events.TopicUpdatedEvent{
		BaseEvent:      s.baseEvent(events.TopicUpdated),
		TopicID:        verdict.TopicID,
		ParentID:       parentID,
		ArticleVersion: verdict.Version,
		Title:          verdict.Title,
		Reasons:        verdict.Reasons,
	}

	if err := s.producer.PublishEvent(ctx, kafka.TopicTopicEvents, event); err != nil {
		return err
	}

	config.Logger.Infof("토픽 업데이트 이벤트 발행: %s (v%d)", verdict.TopicID, verdict.Version)
	return nil
}

// PublishTopicReused 기존 기사 재사용 이벤트 발행
func (s *EventService) PublishTopicReused(ctx context.Context, verdict *Verdict) error {
	event := events.TopicReusedEvent{
		BaseEvent:      s.baseEvent(events.TopicReused),
		TopicID:        verdict.TopicID,
		ArticleVersion: verdict.Version,
		Reasons:        verdict.Reasons,
	}

	if err := s.producer.PublishEvent(ctx, kafka.TopicTopicEvents, event); err != nil {
		return err
	}

	config.Logger.Debugf("토픽 재사용 이벤트 발행: %s", verdict.TopicID)
	return nil
}
