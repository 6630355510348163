// Package rabbitmq содержит подключение к RabbitMQ и публикацию
// событий жизненного цикла заявок AOI.
//
// Сервис только публикует события (request.created, request.status_changed)
// в exchange для внешнего конвейера обработки снимков; потребителя
// в этом репозитории нет — заявки остаются в статусе Pending,
// пока администратор не изменит статус вручную.
package rabbitmq

import (
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Exchange — имя exchange для событий заявок.
const Exchange = "requests"

// Routing keys публикуемых событий.
const (
	RoutingKeyCreated       = "request.created"
	RoutingKeyStatusChanged = "request.status_changed"
)

// Connect устанавливает соединение с RabbitMQ с повторными попытками.
func Connect(connection string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "rabbitmq.Connect"
	var conn *amqp.Connection
	var err error

	for range retries {
		conn, err = amqp.Dial(connection)
		if err == nil {
			return conn, nil
		}
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("%s: %w", op, err)
}

// SetupChannel открывает канал и объявляет exchange событий заявок.
func SetupChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		Exchange, // exchange
		"direct", // тип
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ch, nil
}
