// Package kafkabus publica eventos de auditoría en un topic de Kafka.
package kafkabus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"health-records-portal/internal/ports/audit"
)

const writeTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	w messageWriter
}

// New crea un writer async: WriteMessages no bloquea el request esperando
// acks del broker.
func New(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafkabus: no brokers")
	}
	if topic == "" {
		return nil, errors.New("kafkabus: empty topic")
	}
	return &Publisher{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		AllowAutoTopicCreation: true,
	}}, nil
}

func (p *Publisher) Publish(ctx context.Context, e audit.Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("kafkabus: marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	// key = patient id: los eventos de un paciente quedan ordenados en una partición.
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(e.PatientID, 10)),
		Value: value,
		Time:  e.At,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
		},
	})
}

func (p *Publisher) Close() error {
	return p.w.Close()
}
