package kafka

import (
	"os"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// Config Kafka 설정 구조체
type Config struct {
	BootstrapServers string
}

// Producer 기본값 상수 정의
const (
	DefaultProducerAcks      = "all"
	DefaultProducerRetries   = 3
	DefaultProducerBatchSize = 16384
	DefaultProducerLingerMs  = 10
)

// NewConfig 환경변수에서 Kafka 설정을 생성
func NewConfig() *Config {
	bootstrapServers := os.Getenv("KAFKA_BOOTSTRAP_SERVERS")
	if bootstrapServers == "" {
		panic("KAFKA_BOOTSTRAP_SERVERS environment variable is required")
	}

	return &Config{
		BootstrapServers: bootstrapServers,
	}
}

// ProducerConfig Producer 설정을 반환
func (c *Config) ProducerConfig() kafka.ConfigMap {
	return kafka.ConfigMap{
		"bootstrap.servers": c.BootstrapServers,
		"acks":              DefaultProducerAcks,
		"retries":           DefaultProducerRetries,
		"batch.size":        DefaultProducerBatchSize,
		"linger.ms":         DefaultProducerLingerMs,
	}
}
