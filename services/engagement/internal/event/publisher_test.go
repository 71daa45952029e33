package event

import (
	"GoEngage/common/model/mq"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer func() { require.NoError(t, producer.Close()) }()

	msg := mq.LikeKafkaJson{TimeStamp: 1700000000, Business: 1, UserId: 3, LikeId: 42, Liked: true, LikesCount: 5}
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(m *sarama.ProducerMessage) error {
		if m.Topic != "engagement" {
			return errors.New("wrong topic " + m.Topic)
		}
		key, _ := m.Key.Encode()
		if string(key) != "42" {
			return errors.New("wrong key " + string(key))
		}
		if len(m.Headers) != 1 || string(m.Headers[0].Value) != mq.TypeLike {
			return errors.New("missing type header")
		}
		value, _ := m.Value.Encode()
		got := mq.LikeKafkaJson{}
		if err := json.Unmarshal(value, &got); err != nil {
			return err
		}
		if got != msg {
			return errors.New("payload mismatch")
		}
		return nil
	})

	p := NewKafkaPublisher(producer, "engagement", discard())
	require.NoError(t, p.Publish(context.Background(), msg))
}

func TestKafkaPublisher_RetriesThenGivesUp(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer func() { require.NoError(t, producer.Close()) }()
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewKafkaPublisher(producer, "engagement", discard(), WithAttempts(2), WithBackoff(time.Millisecond))
	err := p.Publish(context.Background(), mq.RatingKafkaJson{Id: 1, ContentType: "course", ContentId: "c"})
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}

func TestKafkaPublisher_RetrySucceeds(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer func() { require.NoError(t, producer.Close()) }()
	producer.ExpectSendMessageAndFail(sarama.ErrNotLeaderForPartition)
	producer.ExpectSendMessageAndSucceed()

	p := NewKafkaPublisher(producer, "engagement", discard(), WithBackoff(time.Millisecond))
	require.NoError(t, p.Publish(context.Background(), mq.ReplyKafkaJson{Id: 9, ThreadId: 2}))
}

func TestLogPublisher(t *testing.T) {
	require.NoError(t, LogPublisher{Logger: discard()}.Publish(context.Background(), mq.DiscussionKafkaJson{Id: 1}))
}
