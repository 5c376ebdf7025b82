package kafka

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/quake-views/internal/config"
	"github.com/couchcryptid/quake-views/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes view snapshots to the sink topic.
// It implements pipeline.Loader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers()...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Load publishes one snapshot event to the sink topic.
func (w *Writer) Load(ctx context.Context, event domain.OutputEvent) error {
	return w.writer.WriteMessages(ctx, mapOutputEventToMessage(event))
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// mapOutputEventToMessage converts a transport-neutral OutputEvent into a
// Kafka message. Header order is unspecified; consumers look headers up by key.
func mapOutputEventToMessage(event domain.OutputEvent) kafkago.Message {
	headers := make([]kafkago.Header, 0, len(event.Headers))
	for k, v := range event.Headers {
		headers = append(headers, kafkago.Header{Key: k, Value: []byte(v)})
	}
	return kafkago.Message{
		Key:     event.Key,
		Value:   event.Value,
		Headers: headers,
	}
}
