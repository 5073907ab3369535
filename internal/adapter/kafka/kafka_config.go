package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

func NewProducerConfig(clientID string) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_6_0_0
	cfg.ClientID = clientID
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true // required by SyncProducer
	cfg.Producer.Idempotent = true
	cfg.Net.MaxOpenRequests = 1 // required by Idempotent
	cfg.Net.DialTimeout = 5 * time.Second
	return cfg
}

func NewSyncProducer(brokers []string, clientID string) (sarama.SyncProducer, error) {
	return sarama.NewSyncProducer(brokers, NewProducerConfig(clientID))
}
