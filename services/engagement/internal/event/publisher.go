package event

import (
	"GoEngage/common/model/mq"
	"GoEngage/services/engagement/internal/metrics"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
)

// Publisher 在事务提交后发送事件，失败不影响已提交的写入
type Publisher interface {
	Publish(ctx context.Context, msg mq.Message) error
}

type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
	// 最多发送次数
	attempts int
	backoff  time.Duration
	timeout  time.Duration
}

type Option func(p *KafkaPublisher)

// WithAttempts 默认3次
func WithAttempts(n int) Option {
	return func(p *KafkaPublisher) {
		if n > 0 {
			p.attempts = n
		}
	}
}

// WithBackoff 默认100ms
func WithBackoff(d time.Duration) Option {
	return func(p *KafkaPublisher) {
		p.backoff = d
	}
}

// WithTimeout 单条消息的总发送时间，默认500ms
func WithTimeout(d time.Duration) Option {
	return func(p *KafkaPublisher) {
		if d > 0 {
			p.timeout = d
		}
	}
}

func NewKafkaPublisher(producer sarama.SyncProducer, topic string, logger *slog.Logger, options ...Option) *KafkaPublisher {
	p := &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
		attempts: 3,
		backoff:  100 * time.Millisecond,
		timeout:  500 * time.Millisecond,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *KafkaPublisher) Publish(ctx context.Context, msg mq.Message) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(msg.Key()),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("type"), Value: []byte(msg.Type())},
		},
	}

	timeout, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	for i := 1; i <= p.attempts; i++ {
		_, _, err = p.producer.SendMessage(message)
		if err == nil {
			metrics.EventsPublished.WithLabelValues(msg.Type(), metrics.ResultOk).Inc()
			return nil
		}
		p.logger.Error("send message to kafka", "type", msg.Type(), "times", i, "err", err.Error())
		if i == p.attempts {
			break
		}
		select {
		case <-timeout.Done():
			metrics.EventsPublished.WithLabelValues(msg.Type(), metrics.ResultFailed).Inc()
			return errors.Join(err, timeout.Err())
		case <-time.After(p.backoff):
		}
	}
	metrics.EventsPublished.WithLabelValues(msg.Type(), metrics.ResultFailed).Inc()
	return err
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// LogPublisher 未配置kafka时使用，只记录日志
type LogPublisher struct {
	Logger *slog.Logger
}

func (p LogPublisher) Publish(_ context.Context, msg mq.Message) error {
	p.Logger.Debug("engagement event", "type", msg.Type(), "key", msg.Key())
	return nil
}
