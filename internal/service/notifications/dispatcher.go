package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"atlas3-backend/internal/common/logger"
)

// Dispatcher hands jobs off without waiting for delivery. Implementations
// never return delivery errors to the caller; they log them.
type Dispatcher interface {
	Dispatch(job Job)
}

// Noop drops every job. Used when no bot API is configured.
type Noop struct{}

func (Noop) Dispatch(job Job) {
	logger.Debug().
		Str("type", string(job.Kind)).
		Str("giveaway_slug", job.GiveawaySlug).
		Msg("Bot API not configured, notification skipped")
}

// MemoryDispatcher delivers jobs from a bounded in-process queue. When the
// queue is full, or the dispatcher is stopped, jobs are dropped and logged.
type MemoryDispatcher struct {
	sender      Sender
	workers     int
	sendTimeout time.Duration
	log         zerolog.Logger

	mu      sync.RWMutex
	queue   chan Job
	stopped bool
	wg      sync.WaitGroup
}

func NewMemoryDispatcher(sender Sender, workers, queueSize int, sendTimeout time.Duration) *MemoryDispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &MemoryDispatcher{
		sender:      sender,
		workers:     workers,
		sendTimeout: sendTimeout,
		log:         logger.With().Str("component", "notifications").Logger(),
		queue:       make(chan Job, queueSize),
	}
}

// Start launches the workers. They run until Stop drains the queue.
func (d *MemoryDispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.run()
	}
	d.log.Info().Int("workers", d.workers).Int("queue_size", cap(d.queue)).Msg("Notification dispatcher started")
}

// Stop refuses new jobs and waits for queued ones to be delivered.
func (d *MemoryDispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
	d.log.Info().Msg("Notification dispatcher stopped")
}

func (d *MemoryDispatcher) Dispatch(job Job) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.log.Warn().Str("type", string(job.Kind)).Str("giveaway_slug", job.GiveawaySlug).Msg("Dispatcher stopped, notification dropped")
		return
	}
	select {
	case d.queue <- job:
	default:
		d.log.Warn().Str("type", string(job.Kind)).Str("giveaway_slug", job.GiveawaySlug).Msg("Notification queue full, notification dropped")
	}
}

func (d *MemoryDispatcher) run() {
	defer d.wg.Done()
	for job := range d.queue {
		deliver(d.sender, job, d.sendTimeout, d.log)
	}
}

// deliver sends one job and logs the outcome. Panics in the sender are
// contained so a bad job cannot kill a worker.
func deliver(sender Sender, job Job, timeout time.Duration, log zerolog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("type", string(job.Kind)).Msg("Notification sender panicked")
		}
	}()

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := sender.Send(ctx, job); err != nil {
		log.Error().Err(err).
			Str("type", string(job.Kind)).
			Str("giveaway_slug", job.GiveawaySlug).
			Str("channel_id", job.ChannelID).
			Msg("Failed to deliver notification")
		return
	}
	log.Debug().Str("type", string(job.Kind)).Str("giveaway_slug", job.GiveawaySlug).Msg("Notification delivered")
}
