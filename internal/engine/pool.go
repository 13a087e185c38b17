package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/donaldgifford/ebay-catalog-importer/internal/queue"
)

const (
	defaultWorkers      = 5
	defaultErrorBackoff = 2 * time.Second
	ackTimeout          = 10 * time.Second
)

// Processor handles one delivery. A nil error means the delivery may be
// acknowledged.
type Processor interface {
	Process(ctx context.Context, d *queue.Delivery) error
}

// Pool runs a fixed number of workers pulling deliveries from the queue.
type Pool struct {
	queue        queue.Queue
	processor    Processor
	workers      int
	consumer     string
	errorBackoff time.Duration
	log          *slog.Logger
}

// PoolOption configures the Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of concurrent workers.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithConsumerName sets the prefix of the per-worker consumer names.
func WithConsumerName(name string) PoolOption {
	return func(p *Pool) {
		if name != "" {
			p.consumer = name
		}
	}
}

// WithPoolLogger sets a custom logger.
func WithPoolLogger(l *slog.Logger) PoolOption {
	return func(p *Pool) {
		p.log = l
	}
}

// WithErrorBackoff sets how long a worker waits after a queue error.
func WithErrorBackoff(d time.Duration) PoolOption {
	return func(p *Pool) {
		p.errorBackoff = d
	}
}

// NewPool creates a Pool. The default consumer name is the hostname.
func NewPool(q queue.Queue, proc Processor, opts ...PoolOption) *Pool {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "worker"
	}
	p := &Pool{
		queue:        q,
		processor:    proc,
		workers:      defaultWorkers,
		consumer:     host,
		errorBackoff: defaultErrorBackoff,
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run starts the workers and blocks until ctx is canceled and every worker
// has returned. A job interrupted by shutdown is left un-acked.
func (p *Pool) Run(ctx context.Context) {
	p.log.Info("worker pool started", "workers", p.workers, "consumer", p.consumer)

	var wg sync.WaitGroup
	for i := range p.workers {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			p.work(ctx, name)
		}(fmt.Sprintf("%s-%d", p.consumer, i))
	}
	wg.Wait()

	p.log.Info("worker pool stopped")
}

func (p *Pool) work(ctx context.Context, consumer string) {
	log := p.log.With("consumer", consumer)
	for ctx.Err() == nil {
		d, err := p.queue.Receive(ctx, consumer)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("receiving from queue failed", "error", err)
			p.sleep(ctx, p.errorBackoff)
			continue
		}
		if d == nil {
			continue
		}
		p.handle(ctx, log, d)
	}
}

// handle processes one delivery, acking it on success. Panics are recovered
// so one bad job cannot take the worker down; the delivery stays un-acked
// and its attempt count eventually retires it.
func (p *Pool) handle(ctx context.Context, log *slog.Logger, d *queue.Delivery) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while processing job",
				"job_id", d.Message.JobID,
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()

	if err := p.processor.Process(ctx, d); err != nil {
		if ctx.Err() == nil {
			log.Error("processing job failed, leaving for redelivery",
				"job_id", d.Message.JobID,
				"error", err,
			)
		}
		return
	}

	ackCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ackTimeout)
	defer cancel()
	if err := p.queue.Ack(ackCtx, d); err != nil {
		if errors.Is(err, queue.ErrLeaseLost) {
			log.Warn("delivery was taken over before ack", "job_id", d.Message.JobID)
			return
		}
		log.Error("acking job failed", "job_id", d.Message.JobID, "error", err)
	}
}

func (p *Pool) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
