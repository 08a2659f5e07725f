package sink

import (
	"context"
	"sync/atomic"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

// KafkaSink publishes each Write's bytes as one Kafka record value to a
// fixed topic. Grounded on the teacher's internal/kafka consumer wiring
// (kgo.Client construction, OnPartitions* join tracking, zap logging),
// mirrored for the producer side: this service produces composed MRT
// bytes rather than consuming BMP/state topics.
type KafkaSink struct {
	client *kgo.Client
	topic  string
	logger *zap.Logger
	ready  atomic.Bool
}

func NewKafkaSink(brokers []string, topic, clientID string, logger *zap.Logger) (*KafkaSink, error) {
	ks := &KafkaSink{topic: topic, logger: logger}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(clientID),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, err
	}
	ks.client = client
	ks.ready.Store(true)
	return ks, nil
}

// Write produces recordBytes to the configured topic and blocks until
// the broker acknowledges it.
func (ks *KafkaSink) Write(ctx context.Context, recordBytes []byte) error {
	rec := &kgo.Record{Topic: ks.topic, Value: recordBytes}

	result := make(chan error, 1)
	ks.client.Produce(ctx, rec, func(_ *kgo.Record, err error) {
		result <- err
	})

	select {
	case err := <-result:
		if err != nil {
			ks.logger.Error("kafka sink: produce failed", zap.Error(err), zap.String("topic", ks.topic))
		}
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsReady reports whether the underlying client was constructed
// successfully and has not been closed.
func (ks *KafkaSink) IsReady() bool {
	return ks.ready.Load()
}

func (ks *KafkaSink) Close() {
	ks.ready.Store(false)
	ks.client.Close()
}
