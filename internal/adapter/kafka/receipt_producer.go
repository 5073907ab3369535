package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/aq2208/gstore-api/internal/usecase"
)

// ReceiptProducer implements usecase.ReceiptPublisher on a Kafka topic,
// keyed by order number.
type ReceiptProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewReceiptProducer(p sarama.SyncProducer, topic string) *ReceiptProducer {
	return &ReceiptProducer{producer: p, topic: topic}
}

func (p *ReceiptProducer) PublishReceipt(ctx context.Context, msg usecase.ReceiptIssuedMsg) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(msg.OrderNumber),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("type"), Value: []byte("receipt.issued")},
		},
	})
	if err != nil {
		return fmt.Errorf("send to %s: %w", p.topic, err)
	}
	return nil
}

func (p *ReceiptProducer) Close() error { return p.producer.Close() }

var _ usecase.ReceiptPublisher = (*ReceiptProducer)(nil)
