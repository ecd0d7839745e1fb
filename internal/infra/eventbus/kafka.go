package eventbus

import (
	"context"
	"time"

	otelkafka "github.com/Trendyol/otel-kafka-konsumer"
	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"book-rental/internal/pkg/config"
	"book-rental/internal/pkg/errs"
	"book-rental/internal/usecase/shared"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type MessageWriter interface {
	WriteMessage(ctx context.Context, msg kafka.Message) error
	Close() error
}

// KafkaPublisher writes one message per rental event, keyed by rental id so
// events of the same rental stay ordered within a partition.
type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(cfg config.KafkaConfig, serviceName string) (*KafkaPublisher, error) {
	baseWriter := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: cfg.BatchTimeout,
		RequiredAcks: kafka.RequireAll,
	}

	writer, err := otelkafka.NewWriter(baseWriter,
		otelkafka.WithTracerProvider(otel.GetTracerProvider()),
		otelkafka.WithPropagator(propagation.TraceContext{}),
		otelkafka.WithAttributes(
			[]attribute.KeyValue{
				semconv.MessagingDestinationNameKey.String(cfg.Topic),
				attribute.String("messaging.kafka.client_id", serviceName),
			},
		),
	)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create kafka writer")
	}
	return NewKafkaPublisherWithWriter(writer), nil
}

func NewKafkaPublisherWithWriter(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events []shared.RentalEvent) error {
	for _, e := range events {
		msg, err := toMessage(e)
		if err != nil {
			return err
		}
		if err := p.writer.WriteMessage(ctx, msg); err != nil {
			return errs.Wrapf(err, "failed to publish %s for rental %s", e.Kind, e.HeaderID)
		}
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func toMessage(e shared.RentalEvent) (kafka.Message, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, errs.Wrapf(err, "failed to encode event %s", e.ID)
	}
	return kafka.Message{
		Key:   []byte(e.HeaderID.String()),
		Value: payload,
		Time:  e.OccurredAt.UTC().Truncate(time.Millisecond),
		Headers: []kafka.Header{
			{Key: "event_kind", Value: []byte(e.Kind)},
			{Key: "event_id", Value: []byte(e.ID.String())},
		},
	}, nil
}
