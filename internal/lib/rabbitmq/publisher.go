package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// RequestEvent — полезная нагрузка события жизненного цикла заявки.
type RequestEvent struct {
	RequestUID string    `json:"requestId"`
	UserUID    string    `json:"userId"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher публикует события заявок в exchange.
// Нулевой *Publisher безопасен: Publish становится no-op,
// что позволяет выключать публикацию в тестах и локальной разработке.
type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher создает Publisher поверх открытого канала.
func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// Publish сериализует событие в JSON и публикует его с указанным routing key.
func (p *Publisher) Publish(routingKey string, event RequestEvent) error {
	const op = "rabbitmq.Publish"
	if p == nil || p.ch == nil {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		Exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
