package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"triptacticx/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	// EventTypePlanGenerated - тип сообщения о построенном плане.
	EventTypePlanGenerated = "plan.generated"
	appID                  = "triptacticx"
)

// PlanEventPublisher публикует события о построенных планах.
type PlanEventPublisher interface {
	PublishPlanGenerated(ctx context.Context, event models.PlanGeneratedEvent) error
}

// RabbitMQPublisher публикует события в durable очередь RabbitMQ.
type RabbitMQPublisher struct {
	mu        sync.Mutex
	channel   *amqp.Channel
	queueName string
	logger    *zap.Logger
}

// NewRabbitMQPublisher открывает канал и объявляет очередь событий.
// Канал закрывается через Close.
func NewRabbitMQPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (*RabbitMQPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть канал RabbitMQ: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		amqp.Table{"x-queue-mode": "lazy"},
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("не удалось объявить очередь событий '%s': %w", queueName, err)
	}

	logger = logger.Named("RabbitMQPublisher")
	logger.Info("Очередь событий успешно объявлена/найдена", zap.String("queue", queueName))
	return &RabbitMQPublisher{channel: ch, queueName: queueName, logger: logger}, nil
}

var _ PlanEventPublisher = (*RabbitMQPublisher)(nil)

// PublishPlanGenerated публикует событие plan.generated.
func (p *RabbitMQPublisher) PublishPlanGenerated(ctx context.Context, event models.PlanGeneratedEvent) error {
	log := p.logger.With(zap.String("plan_id", event.PlanID))

	body, err := json.Marshal(event)
	if err != nil {
		log.Error("Ошибка сериализации события", zap.Error(err))
		return fmt.Errorf("ошибка сериализации события для плана %s: %w", event.PlanID, err)
	}

	p.mu.Lock()
	err = p.channel.PublishWithContext(ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
			Type:         EventTypePlanGenerated,
			AppId:        appID,
			MessageId:    event.PlanID + "-generated",
		},
	)
	p.mu.Unlock()

	if err != nil {
		log.Error("Ошибка публикации события в RabbitMQ", zap.Error(err))
		return fmt.Errorf("ошибка публикации события для плана %s: %w", event.PlanID, err)
	}

	log.Debug("Событие отправлено", zap.String("queue", p.queueName), zap.String("type", EventTypePlanGenerated))
	return nil
}

// Close закрывает канал публикации.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.Close()
}

// NopPublisher используется, когда RABBITMQ_URL не задан.
type NopPublisher struct{}

func NewNopPublisher() *NopPublisher {
	return &NopPublisher{}
}

var _ PlanEventPublisher = (*NopPublisher)(nil)

func (NopPublisher) PublishPlanGenerated(context.Context, models.PlanGeneratedEvent) error {
	return nil
}
