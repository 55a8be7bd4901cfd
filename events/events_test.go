package events_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kona/events"
)

func TestSerializeDeserializeTopicCreated(t *testing.T) {
	event := events.TopicCreatedEvent{
		BaseEvent: events.BaseEvent{
			ID:        "evt-1",
			Type:      events.TopicCreated,
			Timestamp: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
			Source:    "engine",
			Version:   "1.0",
		},
		TopicID:        "a1b2c3d4e5f6",
		ArticleVersion: 1,
		Title:          "전세사기 피해 확산",
	}

	data, eventType, err := events.SerializeEvent(event)
	require.NoError(t, err)
	assert.Equal(t, events.TopicCreated, eventType)

	decoded, err := events.DeserializeEvent(eventType, data)
	require.NoError(t, err)
	restored, ok := decoded.(*events.TopicCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, event, *restored)
}

func TestSerializeDeserializeTopicUpdated(t *testing.T) {
	event := events.TopicUpdatedEvent{
		BaseEvent: events.BaseEvent{
			ID:        "evt-2",
			Type:      events.TopicUpdated,
			Timestamp: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
			Source:    "engine",
			Version:   "1.0",
		},
		TopicID:        "b2c3d4e5f6a1",
		ParentID:       "a1b2c3d4e5f6",
		ArticleVersion: 2,
		Title:          "전세사기 피해 확산",
		Reasons:        []string{"1개의 새로운 소스 발견"},
	}

	data, eventType, err := events.SerializeEvent(event)
	require.NoError(t, err)
	assert.Equal(t, events.TopicUpdated, eventType)

	decoded, err := events.DeserializeEvent(eventType, data)
	require.NoError(t, err)
	restored, ok := decoded.(*events.TopicUpdatedEvent)
	require.True(t, ok)
	assert.Equal(t, event, *restored)
}

func TestSerializeUnknownEvent(t *testing.T) {
	_, _, err := events.SerializeEvent(struct{ Name string }{Name: "x"})
	assert.Error(t, err)
}

func TestDeserializeUnknownType(t *testing.T) {
	_, err := events.DeserializeEvent("topic.unknown", []byte("{}"))
	assert.Error(t, err)
}
