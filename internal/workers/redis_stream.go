package workers

import (
	"context"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"atlas3-backend/internal/common/logger"
	"atlas3-backend/internal/service/notifications"
)

const (
	consumerGroup = "atlas3_backend_notifiers"
	readBlock     = 5 * time.Second
	errorBackoff  = time.Second
)

// StreamWorker consumes notification jobs from a redis stream and delivers
// them through a Sender. Every message is acked after one attempt; failed
// deliveries are logged, not retried.
type StreamWorker struct {
	rdb         goredis.Cmdable
	sender      notifications.Sender
	streamKey   string
	consumer    string
	sendTimeout time.Duration
	log         zerolog.Logger
}

func NewStreamWorker(rdb goredis.Cmdable, sender notifications.Sender, streamKey, consumer string, sendTimeout time.Duration) *StreamWorker {
	return &StreamWorker{
		rdb:         rdb,
		sender:      sender,
		streamKey:   streamKey,
		consumer:    consumer,
		sendTimeout: sendTimeout,
		log:         logger.With().Str("component", "stream_worker").Str("stream", streamKey).Str("consumer", consumer).Logger(),
	}
}

// Start blocks until ctx is cancelled.
func (w *StreamWorker) Start(ctx context.Context) {
	err := w.rdb.XGroupCreateMkStream(ctx, w.streamKey, consumerGroup, "$").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		w.log.Error().Err(err).Msg("Error creating consumer group")
	}

	w.log.Info().Msg("Starting redis stream worker")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping redis stream worker")
			return
		default:
		}

		entries, err := w.rdb.XReadGroup(ctx, &goredis.XReadGroupArgs{
			Group:    consumerGroup,
			Consumer: w.consumer,
			Streams:  []string{w.streamKey, ">"},
			Count:    10,
			Block:    readBlock,
		}).Result()
		if err != nil {
			if errors.Is(err, goredis.Nil) || ctx.Err() != nil {
				continue
			}
			w.log.Error().Err(err).Msg("Error reading from stream")
			time.Sleep(errorBackoff)
			continue
		}

		for _, stream := range entries {
			for _, msg := range stream.Messages {
				w.processMessage(ctx, msg.Values)
				if err := w.rdb.XAck(context.Background(), w.streamKey, consumerGroup, msg.ID).Err(); err != nil {
					w.log.Error().Err(err).Str("message_id", msg.ID).Msg("Error acking message")
				}
			}
		}
	}
}

func (w *StreamWorker) processMessage(ctx context.Context, values map[string]interface{}) {
	job, err := notifications.JobFromValues(values)
	if err != nil {
		w.log.Warn().Err(err).Interface("values", values).Msg("Skipping malformed notification")
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, w.sendTimeout)
	defer cancel()

	if err := w.sender.Send(sendCtx, job); err != nil {
		w.log.Error().Err(err).
			Str("type", string(job.Kind)).
			Str("giveaway_slug", job.GiveawaySlug).
			Msg("Failed to deliver notification")
		return
	}
	w.log.Debug().Str("type", string(job.Kind)).Str("giveaway_slug", job.GiveawaySlug).Msg("Notification delivered")
}
