// Package rabbitmq はドメインイベントを RabbitMQ のキューへ配信します。
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ogurasousui/contratacao-empresa/internal/core/events"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 2 * time.Second

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher は events.Publisher の RabbitMQ 実装です。
type Publisher struct {
	conn   *amqp.Connection
	ch     channel
	queue  string
	logger *slog.Logger
}

var _ events.Publisher = (*Publisher)(nil)

// NewPublisher は RabbitMQ へ接続し、永続キューを宣言した Publisher を生成します。
func NewPublisher(uri, queue string, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: declare queue %s: %w", queue, err)
	}

	p := newPublisher(ch, queue, logger)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, queue string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{ch: ch, queue: queue, logger: logger}
}

// Publish はイベントを JSON として永続メッセージで配信します。失敗はログに記録するのみです。
func (p *Publisher) Publish(ctx context.Context, e events.Event) {
	if err := p.publish(ctx, e); err != nil {
		p.logger.WarnContext(ctx, "failed to publish event",
			slog.String("type", string(e.Type)),
			slog.Int64("company_id", e.CompanyID),
			slog.Int64("employee_id", e.EmployeeID),
			slog.Any("error", err),
		)
	}
}

func (p *Publisher) publish(ctx context.Context, e events.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	// リクエストのキャンセルに巻き込まれないよう、コミット後の配信は独立した期限で行う
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(pubCtx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    e.OccurredAt,
		Type:         string(e.Type),
		Body:         body,
	})
}

// Close はチャネルと接続を閉じます。
func (p *Publisher) Close() error {
	var errCh, errConn error
	if p.ch != nil {
		errCh = p.ch.Close()
	}
	if p.conn != nil {
		errConn = p.conn.Close()
	}
	return errors.Join(errCh, errConn)
}
