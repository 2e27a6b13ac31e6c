package ingest

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// JobTypeCatalogSync is the job type that triggers a catalog sync.
const JobTypeCatalogSync = "catalog_sync"

// SyncMessage is the Pub/Sub payload understood by the trigger.
type SyncMessage struct {
	JobType string `json:"job_type"`
}

// Ackable is the part of a Pub/Sub message the trigger settles.
type Ackable interface {
	Ack()
	Nack()
}

// PubSubTrigger runs catalog syncs on Pub/Sub messages.
type PubSubTrigger struct {
	client           *pubsub.Client
	subscriber       *pubsub.Subscriber
	subscriptionName string
	runner           Runner
	logger           zerolog.Logger
}

// PubSubConfig holds configuration for the Pub/Sub trigger.
type PubSubConfig struct {
	ProjectID        string
	SubscriptionName string
	Runner           Runner
	Logger           zerolog.Logger
}

// NewPubSubTrigger creates a new Pub/Sub trigger.
func NewPubSubTrigger(ctx context.Context, cfg PubSubConfig) (*PubSubTrigger, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	subscriber := client.Subscriber(cfg.SubscriptionName)

	// Syncs are serialized, so there is no point pulling many at once.
	subscriber.ReceiveSettings.MaxOutstandingMessages = 1
	subscriber.ReceiveSettings.MaxExtension = 10 * time.Minute

	return &PubSubTrigger{
		client:           client,
		subscriber:       subscriber,
		subscriptionName: cfg.SubscriptionName,
		runner:           cfg.Runner,
		logger:           cfg.Logger,
	}, nil
}

// Start begins processing Pub/Sub messages.
func (t *PubSubTrigger) Start(ctx context.Context) error {
	t.logger.Info().
		Str("subscription", t.subscriptionName).
		Msg("starting pubsub trigger")

	return t.subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		logger := t.logger.With().
			Str("message_id", msg.ID).
			Str("publish_time", msg.PublishTime.Format(time.RFC3339)).
			Logger()
		handleMessage(ctx, t.runner, logger, msg.Data, msg)
	})
}

// Close closes the Pub/Sub client.
func (t *PubSubTrigger) Close() error {
	return t.client.Close()
}

func handleMessage(ctx context.Context, runner Runner, logger zerolog.Logger, data []byte, msg Ackable) {
	startTime := time.Now()

	var syncMsg SyncMessage
	if err := json.Unmarshal(data, &syncMsg); err != nil {
		logger.Error().Err(err).Msg("failed to parse message")
		msg.Nack()
		return
	}

	if syncMsg.JobType != JobTypeCatalogSync {
		logger.Warn().Str("job_type", syncMsg.JobType).Msg("unknown job type")
		msg.Ack() // Ack unknown messages to prevent redelivery
		return
	}

	result := runner.Run(ctx)

	// Retry only when every source failed.
	if len(result.Providers) > 0 && result.Failed == len(result.Providers) {
		logger.Error().Int("failed_sources", result.Failed).Msg("catalog sync failed")
		msg.Nack()
		return
	}

	logger.Info().
		Str("job_type", syncMsg.JobType).
		Dur("duration", time.Since(startTime)).
		Int("added", result.Added).
		Msg("job completed successfully")

	msg.Ack()
}
