//go:build integration

package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/ogurasousui/contratacao-empresa/internal/core/events"
	amqp "github.com/rabbitmq/amqp091-go"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPublisher_PublishAndConsume(t *testing.T) {
	ctx := context.Background()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "rabbitmq:3.13",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor:   wait.ForListeningPort("5672/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start rabbitmq: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5672/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	uri := fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
	queue := "empresas.eventos.test"

	pub, err := NewPublisher(uri, queue, nil)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	t.Cleanup(func() { _ = pub.Close() })

	conn, err := amqp.Dial(uri)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	ch, err := conn.Channel()
	if err != nil {
		t.Fatalf("channel: %v", err)
	}
	t.Cleanup(func() { _ = ch.Close() })

	msgs, err := ch.Consume(queue, "", true, false, false, false, nil)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}

	pub.Publish(ctx, events.Event{Type: events.TypeCompanyCreated, CompanyID: 1, OccurredAt: time.Now().UTC()})

	select {
	case m := <-msgs:
		var got events.Event
		if err := json.Unmarshal(m.Body, &got); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if got.Type != events.TypeCompanyCreated || got.CompanyID != 1 {
			t.Fatalf("unexpected event %+v", got)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for message")
	}
}
