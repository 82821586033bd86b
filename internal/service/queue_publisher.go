// Package service publishes room events to RabbitMQ.  Publishing is best
// effort: errors are logged and returned, and the HTTP request that caused
// the event has already succeeded.
package service

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"

    q "github.com/iliyamo/pcm-room-status/internal/queue"
)

// Publisher sends room events somewhere.
type Publisher interface {
    PublishRoomEvent(ctx context.Context, ev q.RoomEvent) error
}

// NopPublisher drops every event.  Used when AMQP is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishRoomEvent(context.Context, q.RoomEvent) error { return nil }

// AMQPPublisher dials the broker for every event, which keeps it free of
// reconnect state at the volume a housekeeping dashboard produces.
type AMQPPublisher struct {
    URL   string
    Queue string
    Log   *zap.Logger
}

// PublishRoomEvent publishes ev to the durable room events queue. Messages
// are marked as persistent.
func (p *AMQPPublisher) PublishRoomEvent(ctx context.Context, ev q.RoomEvent) error {
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        p.Log.Warn("rabbitmq: dial failed", zap.Error(err))
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        p.Log.Warn("rabbitmq: channel open failed", zap.Error(err))
        return err
    }
    defer func() { _ = ch.Close() }()

    // Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
        p.Log.Warn("rabbitmq: queue declare failed", zap.Error(err))
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return err
    }
    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Type:         ev.Type,
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
        p.Log.Warn("rabbitmq: publish failed", zap.Error(err))
        return err
    }
    return nil
}

// PublishAsync publishes ev on its own goroutine with a timeout so the
// caller never waits on the broker.
func PublishAsync(p Publisher, log *zap.Logger, ev q.RoomEvent) {
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        if err := p.PublishRoomEvent(ctx, ev); err != nil {
            log.Warn("room event not published", zap.String("type", ev.Type), zap.Int("room_id", ev.RoomID), zap.Error(err))
        }
    }()
}
