package notifications

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"atlas3-backend/internal/common/logger"
)

const enqueueTimeout = 2 * time.Second

// StreamDispatcher appends jobs to a redis stream consumed by
// workers.StreamWorker, so delivery survives an API restart.
type StreamDispatcher struct {
	rdb       goredis.Cmdable
	streamKey string
	log       zerolog.Logger
}

func NewStreamDispatcher(rdb goredis.Cmdable, streamKey string) *StreamDispatcher {
	return &StreamDispatcher{
		rdb:       rdb,
		streamKey: streamKey,
		log:       logger.With().Str("component", "notifications").Str("stream", streamKey).Logger(),
	}
}

func (d *StreamDispatcher) Dispatch(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), enqueueTimeout)
	defer cancel()

	err := d.rdb.XAdd(ctx, &goredis.XAddArgs{
		Stream: d.streamKey,
		Values: job.Values(),
	}).Err()
	if err != nil {
		d.log.Error().Err(err).Str("type", string(job.Kind)).Str("giveaway_slug", job.GiveawaySlug).Msg("Failed to enqueue notification")
	}
}
