package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/donaldgifford/ebay-catalog-importer/internal/metrics"
)

const (
	defaultStream    = "import-jobs"
	defaultGroup     = "import-workers"
	defaultDedupeTTL = 7 * 24 * time.Hour
	payloadField     = "payload"
)

// RedisQueue implements Queue on a Redis Stream consumer group.
type RedisQueue struct {
	client       *redis.Client
	stream       string
	group        string
	dlq          string
	visibility   time.Duration
	pollInterval time.Duration
	dedupeTTL    time.Duration
	log          *slog.Logger
}

// RedisOption configures a RedisQueue.
type RedisOption func(*RedisQueue)

// WithStream sets the stream name. The dead-letter stream is "<name>:dlq".
func WithStream(name string) RedisOption {
	return func(q *RedisQueue) {
		q.stream = name
		q.dlq = name + ":dlq"
	}
}

// WithGroup sets the consumer group name.
func WithGroup(name string) RedisOption {
	return func(q *RedisQueue) {
		q.group = name
	}
}

// WithVisibility sets how long an un-acked delivery stays with its consumer.
func WithVisibility(d time.Duration) RedisOption {
	return func(q *RedisQueue) {
		if d > 0 {
			q.visibility = d
		}
	}
}

// WithPollInterval sets how long Receive blocks waiting for new entries.
func WithPollInterval(d time.Duration) RedisOption {
	return func(q *RedisQueue) {
		if d > 0 {
			q.pollInterval = d
		}
	}
}

// WithDedupeTTL sets how long a published job id is remembered.
func WithDedupeTTL(d time.Duration) RedisOption {
	return func(q *RedisQueue) {
		if d > 0 {
			q.dedupeTTL = d
		}
	}
}

// WithRedisLogger sets the logger.
func WithRedisLogger(l *slog.Logger) RedisOption {
	return func(q *RedisQueue) {
		q.log = l
	}
}

// NewRedisClient parses a redis:// or rediss:// URL and verifies the
// connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

// NewRedisQueue creates the consumer group (and stream) when missing.
func NewRedisQueue(ctx context.Context, client *redis.Client, opts ...RedisOption) (*RedisQueue, error) {
	q := &RedisQueue{
		client:       client,
		stream:       defaultStream,
		group:        defaultGroup,
		dlq:          defaultStream + ":dlq",
		visibility:   DefaultVisibility,
		pollInterval: DefaultPollInterval,
		dedupeTTL:    defaultDedupeTTL,
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(q)
	}

	err := client.XGroupCreateMkStream(ctx, q.stream, q.group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return nil, fmt.Errorf("creating consumer group %s: %w", q.group, err)
	}

	return q, nil
}

func (q *RedisQueue) dedupeKey(jobID string) string {
	return q.stream + ":dedupe:" + jobID
}

// Publish appends the message to the stream once per job id. A repeated
// publish of the same job id is a no-op.
func (q *RedisQueue) Publish(ctx context.Context, msg Message) error {
	payload, err := encode(msg)
	if err != nil {
		metrics.QueuePublishTotal.WithLabelValues("error").Inc()
		return err
	}

	fresh, err := q.client.SetNX(ctx, q.dedupeKey(msg.JobID), 1, q.dedupeTTL).Result()
	if err != nil {
		metrics.QueuePublishTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("reserving dedupe key for job %s: %w", msg.JobID, err)
	}
	if !fresh {
		metrics.QueuePublishTotal.WithLabelValues("duplicate").Inc()
		q.log.Debug("job already published", "job_id", msg.JobID)
		return nil
	}

	if err := q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		Values: map[string]any{payloadField: payload},
	}).Err(); err != nil {
		// Let a retry publish again.
		q.client.Del(context.WithoutCancel(ctx), q.dedupeKey(msg.JobID))
		metrics.QueuePublishTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("adding job %s to stream: %w", msg.JobID, err)
	}

	metrics.QueuePublishTotal.WithLabelValues("ok").Inc()
	return nil
}

// Receive first reclaims entries idle longer than the visibility timeout,
// then reads new entries, blocking up to the poll interval.
func (q *RedisQueue) Receive(ctx context.Context, consumer string) (*Delivery, error) {
	claimed, _, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   q.stream,
		Group:    q.group,
		Consumer: consumer,
		MinIdle:  q.visibility,
		Start:    "0-0",
		Count:    1,
	}).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("reclaiming idle entries: %w", err)
	}
	if len(claimed) > 0 {
		d, err := q.delivery(ctx, consumer, claimed[0], true)
		if err != nil || d == nil {
			return nil, err
		}
		metrics.QueueDeliveriesTotal.WithLabelValues("redelivered").Inc()
		return d, nil
	}

	streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    q.group,
		Consumer: consumer,
		Streams:  []string{q.stream, ">"},
		Count:    1,
		Block:    q.pollInterval,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("reading from stream %s: %w", q.stream, err)
	}

	for _, s := range streams {
		for _, m := range s.Messages {
			d, err := q.delivery(ctx, consumer, m, false)
			if err != nil || d == nil {
				return nil, err
			}
			metrics.QueueDeliveriesTotal.WithLabelValues("new").Inc()
			return d, nil
		}
	}
	return nil, nil
}

// delivery decodes a stream entry. Entries that cannot be decoded are moved
// to the dead-letter stream and a nil delivery is returned.
func (q *RedisQueue) delivery(
	ctx context.Context,
	consumer string,
	m redis.XMessage,
	reclaimed bool,
) (*Delivery, error) {
	raw, _ := m.Values[payloadField].(string)
	msg, err := decode([]byte(raw))
	if err != nil {
		q.log.Error("dead-lettering undecodable entry",
			"stream", q.stream,
			"entry_id", m.ID,
			"error", err,
		)
		if dlqErr := q.deadLetter(ctx, m, err); dlqErr != nil {
			return nil, dlqErr
		}
		metrics.QueueDeliveriesTotal.WithLabelValues("dead_lettered").Inc()
		return nil, nil
	}

	attempt := 1
	if reclaimed {
		attempt = q.deliveryCount(ctx, m.ID)
	}

	return &Delivery{
		Message:     msg,
		ID:          m.ID,
		Attempt:     attempt,
		Redelivered: reclaimed,
		consumer:    consumer,
	}, nil
}

func (q *RedisQueue) deliveryCount(ctx context.Context, id string) int {
	pending, err := q.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: q.stream,
		Group:  q.group,
		Start:  id,
		End:    id,
		Count:  1,
	}).Result()
	if err != nil || len(pending) == 0 {
		return 2
	}
	return int(pending[0].RetryCount)
}

func (q *RedisQueue) deadLetter(ctx context.Context, m redis.XMessage, cause error) error {
	_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: q.dlq,
			Values: map[string]any{
				payloadField: m.Values[payloadField],
				"entry_id":   m.ID,
				"error":      cause.Error(),
			},
		})
		pipe.XAck(ctx, q.stream, q.group, m.ID)
		pipe.XDel(ctx, q.stream, m.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("dead-lettering entry %s: %w", m.ID, err)
	}
	return nil
}

// touchScript resets the idle time of an entry only while consumer still
// owns it, so a worker that lost the entry cannot claim it back.
var touchScript = redis.NewScript(`
local owned = redis.call('XPENDING', KEYS[1], ARGV[1], ARGV[2], ARGV[2], 1, ARGV[3])
if #owned == 0 then
	return 0
end
redis.call('XCLAIM', KEYS[1], ARGV[1], ARGV[3], 0, ARGV[2], 'JUSTID')
return 1
`)

// ackScript acknowledges and deletes an entry only while consumer owns it.
var ackScript = redis.NewScript(`
local owned = redis.call('XPENDING', KEYS[1], ARGV[1], ARGV[2], ARGV[2], 1, ARGV[3])
if #owned == 0 then
	return 0
end
redis.call('XACK', KEYS[1], ARGV[1], ARGV[2])
redis.call('XDEL', KEYS[1], ARGV[2])
return 1
`)

// Touch resets the idle time of the entry so XAUTOCLAIM leaves it alone.
func (q *RedisQueue) Touch(ctx context.Context, d *Delivery) error {
	held, err := touchScript.Run(ctx, q.client, []string{q.stream}, q.group, d.ID, d.consumer).Int()
	if err != nil {
		return fmt.Errorf("extending lease on %s: %w", d.ID, err)
	}
	if held == 0 {
		return fmt.Errorf("entry %s: %w", d.ID, ErrLeaseLost)
	}
	return nil
}

// Ack acknowledges and deletes the entry if d still owns it.
func (q *RedisQueue) Ack(ctx context.Context, d *Delivery) error {
	held, err := ackScript.Run(ctx, q.client, []string{q.stream}, q.group, d.ID, d.consumer).Int()
	if err != nil {
		return fmt.Errorf("acking entry %s: %w", d.ID, err)
	}
	if held == 0 {
		return fmt.Errorf("entry %s: %w", d.ID, ErrLeaseLost)
	}
	return nil
}

// Close closes the underlying client.
func (q *RedisQueue) Close() error {
	return q.client.Close()
}

// Ping checks that Redis is reachable.
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}
