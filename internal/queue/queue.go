// Package queue carries import jobs from intake to the worker pool.
//
// Two durable backends implement Queue: RedisQueue on Redis Streams and
// PostgresQueue on the import_queue table. Both give at-least-once delivery,
// idempotent publish keyed by job id, and redelivery of un-acked messages
// after the visibility timeout.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

const (
	// DefaultVisibility is how long a delivery stays leased to one consumer
	// without a Touch before another consumer may claim it.
	DefaultVisibility = 5 * time.Minute

	// DefaultPollInterval bounds how long Receive blocks when idle.
	DefaultPollInterval = 2 * time.Second
)

// ErrLeaseLost is returned by Touch when another consumer has taken over
// the delivery or it was already acked.
var ErrLeaseLost = errors.New("delivery lease lost")

// Message is the payload published for every accepted import job.
type Message struct {
	JobID                  string               `json:"jobId"`
	ShopDomain             string               `json:"shopDomain"`
	ExternalSellerIdentity string               `json:"externalSellerIdentity"`
	Total                  int                  `json:"total"`
	ImportOptions          domain.ImportOptions `json:"importOptions,omitempty"`
}

// Validate reports whether the message carries enough to run a job.
func (m Message) Validate() error {
	if m.JobID == "" {
		return fmt.Errorf("message has no jobId")
	}
	if _, err := uuid.Parse(m.JobID); err != nil {
		return fmt.Errorf("message jobId %q is not a UUID: %w", m.JobID, err)
	}
	if m.ShopDomain == "" {
		return fmt.Errorf("message %s has no shopDomain", m.JobID)
	}
	return nil
}

// Delivery is one leased receipt of a Message.
type Delivery struct {
	Message Message

	// ID identifies the receipt inside the backend (stream entry id or job id).
	ID string

	// Attempt counts deliveries of this message, starting at 1. It is a
	// best-effort lower bound for the Redis backend.
	Attempt int

	// Redelivered is true when the message was reclaimed from a consumer
	// that did not ack it in time.
	Redelivered bool

	consumer string
}

// Publisher publishes import messages.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// Queue is the full work queue used by intake and the worker pool.
type Queue interface {
	Publisher

	// Receive blocks up to the poll interval and returns the next delivery,
	// or nil when nothing is available.
	Receive(ctx context.Context, consumer string) (*Delivery, error)

	// Touch extends the lease on a delivery the consumer is still working on.
	Touch(ctx context.Context, d *Delivery) error

	// Ack removes a delivery permanently.
	Ack(ctx context.Context, d *Delivery) error

	Close() error
}

func encode(msg Message) ([]byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encoding message %s: %w", msg.JobID, err)
	}
	return b, nil
}

func decode(b []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(b, &msg); err != nil {
		return Message{}, fmt.Errorf("decoding message: %w", err)
	}
	if err := msg.Validate(); err != nil {
		return Message{}, err
	}
	return msg, nil
}
