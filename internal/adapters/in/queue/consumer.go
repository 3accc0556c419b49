// Package queue consumes carrier status reports from RabbitMQ.
//
// Carriers that cannot call the webhook endpoint directly publish their
// tracking events to the carrier_status_reports exchange instead. The
// consumer translates each message into the same ingest use case the webhook
// runs, so both delivery paths share one idempotency and locking story.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/locker"

	"github.com/rabbitmq/amqp091-go"
)

const (
	// ExchangeName is the fanout exchange carriers publish status reports to.
	ExchangeName = "carrier_status_reports"

	// QueueName is this service's private queue bound to the exchange.
	QueueName = "fulfillment_carrier_status"
)

// CarrierStatusMessage is the wire shape of one carrier status report.
type CarrierStatusMessage struct {
	TenantID   string `json:"tenantId"`
	ShipmentID string `json:"shipmentId"`
	Carrier    string `json:"carrier"`
	RawStatus  string `json:"rawStatus"`
}

// CarrierStatusConsumer reads carrier status reports off the queue and feeds
// them into the ingest use case. Malformed and permanently failing messages
// are acked and dropped; retryable failures are requeued.
type CarrierStatusConsumer struct {
	channel *amqp091.Channel
	handler commands.IngestCarrierStatusCommandHandler
	logger  *slog.Logger

	done chan struct{}
}

// NewCarrierStatusConsumer creates a consumer on an already opened channel.
func NewCarrierStatusConsumer(
	channel *amqp091.Channel,
	handler commands.IngestCarrierStatusCommandHandler,
	logger *slog.Logger,
) (*CarrierStatusConsumer, error) {
	if channel == nil {
		return nil, errs.NewValueIsRequiredError("channel")
	}

	return &CarrierStatusConsumer{
		channel: channel,
		handler: handler,
		logger:  logger.With("component", "carrier_status_consumer"),
		done:    make(chan struct{}),
	}, nil
}

// Start declares the queue topology and begins consuming until the channel
// closes or Stop is called.
func (c *CarrierStatusConsumer) Start(ctx context.Context) error {
	if err := c.channel.ExchangeDeclare(ExchangeName, "fanout", true, false, false, false, nil); err != nil {
		return err
	}

	q, err := c.channel.QueueDeclare(QueueName, true, false, false, false, nil)
	if err != nil {
		return err
	}

	if err = c.channel.QueueBind(q.Name, "", ExchangeName, false, nil); err != nil {
		return err
	}

	deliveries, err := c.channel.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go c.run(ctx, deliveries)

	c.logger.InfoContext(ctx, "Carrier status consumer started", "queue", q.Name)
	return nil
}

// Stop signals the consumer loop to exit.
func (c *CarrierStatusConsumer) Stop() {
	close(c.done)
	c.logger.Info("Carrier status consumer stopped")
}

func (c *CarrierStatusConsumer) run(ctx context.Context, deliveries <-chan amqp091.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case delivery, ok := <-deliveries:
			if !ok {
				return
			}
			c.handleDelivery(ctx, delivery)
		}
	}
}

func (c *CarrierStatusConsumer) handleDelivery(ctx context.Context, delivery amqp091.Delivery) {
	cmd, err := c.parse(delivery.Body)
	if err != nil {
		c.logger.WarnContext(ctx, "Dropping malformed carrier status report", "error", err)
		_ = delivery.Ack(false)
		return
	}

	if _, err = c.handler.Handle(ctx, cmd); err != nil {
		if errors.Is(err, locker.ErrLockTimeout) {
			// The aggregate is busy; let the broker redeliver later.
			_ = delivery.Nack(false, true)
			return
		}

		// Anything else will not succeed on redelivery either.
		c.logger.ErrorContext(ctx, "Dropping carrier status report",
			"shipmentId", cmd.ShipmentID().String(), "error", err)
		_ = delivery.Ack(false)
		return
	}

	_ = delivery.Ack(false)
}

func (c *CarrierStatusConsumer) parse(body []byte) (commands.IngestCarrierStatusCommand, error) {
	var msg CarrierStatusMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return commands.IngestCarrierStatusCommand{}, err
	}

	tenantID, err := kernel.TenantIDFromString(msg.TenantID)
	if err != nil {
		return commands.IngestCarrierStatusCommand{}, err
	}

	shipmentID, err := kernel.UUIDFromString(msg.ShipmentID)
	if err != nil {
		return commands.IngestCarrierStatusCommand{}, err
	}

	carrier, err := shipment.CarrierFromString(msg.Carrier)
	if err != nil {
		return commands.IngestCarrierStatusCommand{}, err
	}

	return commands.NewIngestCarrierStatusCommand(tenantID, shipmentID, carrier, msg.RawStatus)
}
