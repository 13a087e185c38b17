package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-catalog-importer/internal/queue"
	queueMocks "github.com/donaldgifford/ebay-catalog-importer/internal/queue/mocks"
)

// chanQueue hands out deliveries from a channel and records acks.
type chanQueue struct {
	ch chan *queue.Delivery

	mu        sync.Mutex
	acked     []string
	consumers map[string]bool
}

func newChanQueue(ds ...*queue.Delivery) *chanQueue {
	q := &chanQueue{ch: make(chan *queue.Delivery, len(ds)), consumers: map[string]bool{}}
	for _, d := range ds {
		q.ch <- d
	}
	return q
}

func (q *chanQueue) Publish(context.Context, queue.Message) error { return nil }

func (q *chanQueue) Receive(ctx context.Context, consumer string) (*queue.Delivery, error) {
	q.mu.Lock()
	q.consumers[consumer] = true
	q.mu.Unlock()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case d := <-q.ch:
		return d, nil
	case <-time.After(10 * time.Millisecond):
		return nil, nil
	}
}

func (*chanQueue) Touch(context.Context, *queue.Delivery) error { return nil }

func (q *chanQueue) Ack(_ context.Context, d *queue.Delivery) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.acked = append(q.acked, d.Message.JobID)
	return nil
}

func (*chanQueue) Close() error { return nil }

func (q *chanQueue) ackedJobs() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.acked...)
}

// scriptedProcessor behaves according to the job id.
type scriptedProcessor struct {
	mu   sync.Mutex
	seen []string
}

func (p *scriptedProcessor) Process(_ context.Context, d *queue.Delivery) error {
	p.mu.Lock()
	p.seen = append(p.seen, d.Message.JobID)
	p.mu.Unlock()
	switch d.Message.JobID {
	case "fail":
		return errors.New("boom")
	case "panic":
		panic("unexpected nil")
	default:
		return nil
	}
}

func (p *scriptedProcessor) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.seen)
}

func msg(id string) *queue.Delivery {
	return &queue.Delivery{Message: queue.Message{JobID: id, ShopDomain: testShop}, ID: id, Attempt: 1}
}

func TestPool_AcksOnlySuccessfulJobs(t *testing.T) {
	t.Parallel()

	q := newChanQueue(msg("ok-1"), msg("fail"), msg("panic"), msg("ok-2"))
	proc := &scriptedProcessor{}
	pool := NewPool(q, proc, WithWorkers(2), WithConsumerName("test"), WithPoolLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		pool.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return proc.count() == 4 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.ElementsMatch(t, []string{"ok-1", "ok-2"}, q.ackedJobs())
	q.mu.Lock()
	defer q.mu.Unlock()
	assert.True(t, q.consumers["test-0"])
	assert.True(t, q.consumers["test-1"])
}

func TestPool_BacksOffOnReceiveError(t *testing.T) {
	t.Parallel()

	mq := queueMocks.NewMockQueue(t)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	mq.EXPECT().Receive(mock.Anything, "w-0").RunAndReturn(func(context.Context, string) (*queue.Delivery, error) {
		calls++
		if calls == 2 {
			cancel()
		}
		return nil, errors.New("connection refused")
	})

	pool := NewPool(mq, &scriptedProcessor{},
		WithWorkers(1),
		WithConsumerName("w"),
		WithErrorBackoff(time.Millisecond),
		WithPoolLogger(quietLogger()),
	)
	pool.Run(ctx)

	assert.Equal(t, 2, calls)
}

func TestNewPool_Defaults(t *testing.T) {
	t.Parallel()

	pool := NewPool(newChanQueue(), &scriptedProcessor{}, WithWorkers(0), WithConsumerName(""))
	assert.Equal(t, defaultWorkers, pool.workers)
	assert.NotEmpty(t, pool.consumer)
	assert.Equal(t, defaultErrorBackoff, pool.errorBackoff)
}
