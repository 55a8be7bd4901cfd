package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"kona/config"
	"kona/events"
)

// Producer Kafka 프로듀서 인터페이스
type Producer interface {
	PublishEvent(ctx context.Context, topic string, event interface{}) error
	Close() error
}

// KafkaProducer confluent-kafka-go 기반 Producer 구현체
type KafkaProducer struct {
	producer *kafka.Producer
}

// NewProducer 새로운 Kafka 프로듀서 생성
func NewProducer(kafkaConfig *Config) (*KafkaProducer, error) {
	if kafkaConfig == nil {
		return nil, fmt.Errorf("kafka config is required")
	}

	producerConfig := kafkaConfig.ProducerConfig()
	p, err := kafka.NewProducer(&producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	// 비동기 전달 보고서 처리 고루틴
	go func() {
		for e := range p.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					config.Logger.Errorf("메시지 전달 실패 %v: %v", ev.TopicPartition, ev.TopicPartition.Error)
				}
			case kafka.Error:
				config.Logger.Errorf("kafka 오류: %v", ev)
			}
		}
	}()

	return &KafkaProducer{producer: p}, nil
}

// PublishEvent 이벤트를 직렬화해 발행하고 전달 완료를 대기
func (p *KafkaProducer) PublishEvent(ctx context.Context, topic string, event interface{}) error {
	data, eventType, err := events.SerializeEvent(event)
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	deliveryChan := make(chan kafka.Event, 1)
	defer close(deliveryChan)

	err = p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          data,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventType)},
		},
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("failed to produce message: %w", err)
	}

	select {
	case ev := <-deliveryChan:
		m := ev.(*kafka.Message)
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("message delivery failed: %w", m.TopicPartition.Error)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	config.Logger.Debugf("이벤트 발행 완료: %s (%s)", eventType, topic)
	return nil
}

// Close 프로듀서를 안전하게 종료
func (p *KafkaProducer) Close() error {
	if p.producer != nil {
		// 5초 동안 남은 메시지를 모두 플러시합니다.
		if remaining := p.producer.Flush(5000); remaining > 0 {
			config.Logger.Warnf("플러시 후에도 %d개의 메시지가 남아 있습니다", remaining)
		}
		p.producer.Close()
	}
	return nil
}

// NopProducer 는 이벤트 발행이 비활성화됐을 때 쓰는 no-op 구현체다.
type NopProducer struct{}

func (NopProducer) PublishEvent(ctx context.Context, topic string, event interface{}) error {
	return nil
}

func (NopProducer) Close() error { return nil }

// CreateTopicsIfNotExists 토픽이 존재하지 않으면 생성
func CreateTopicsIfNotExists(kafkaConfig *Config) error {
	if kafkaConfig == nil {
		return fmt.Errorf("kafka config is required")
	}

	adminClient, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": kafkaConfig.BootstrapServers,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	topics := make([]kafka.TopicSpecification, 0, len(AllTopics))
	for _, t := range AllTopics {
		topics = append(topics, kafka.TopicSpecification{
			Topic:             t,
			NumPartitions:     3,
			ReplicationFactor: 1,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results, err := adminClient.CreateTopics(ctx, topics)
	if err != nil {
		return fmt.Errorf("failed to create topics: %w", err)
	}

	for _, result := range results {
		if result.Error.Code() != kafka.ErrNoError && result.Error.Code() != kafka.ErrTopicAlreadyExists {
			config.Logger.Errorf("failed to create topic %s: %v", result.Topic, result.Error)
		} else {
			config.Logger.Infof("topic %s is ready", result.Topic)
		}
	}

	return nil
}
