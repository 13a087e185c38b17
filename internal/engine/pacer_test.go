package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacer_ThrottleAndRecover(t *testing.T) {
	t.Parallel()

	p := NewPacer(500*time.Millisecond, 4*time.Second)
	assert.Equal(t, 500*time.Millisecond, p.Delay())

	p.Throttled(0)
	assert.Equal(t, time.Second, p.Delay())
	p.Throttled(0)
	p.Throttled(0)
	assert.Equal(t, 4*time.Second, p.Delay(), "capped at max")

	p.Clean()
	assert.Equal(t, 2*time.Second, p.Delay())
	p.Clean()
	p.Clean()
	p.Clean()
	assert.Equal(t, 500*time.Millisecond, p.Delay(), "never below base")
}

func TestPacer_HonorsRetryAfter(t *testing.T) {
	t.Parallel()

	p := NewPacer(500*time.Millisecond, 4*time.Second)
	p.Throttled(10 * time.Second)
	assert.Equal(t, 10*time.Second, p.Delay())
}

func TestPacer_ZeroBase(t *testing.T) {
	t.Parallel()

	p := NewPacer(0, 3*time.Second)
	p.Throttled(0)
	assert.Equal(t, time.Second, p.Delay())
	p.Clean()
	p.Clean()
	assert.Equal(t, 250*time.Millisecond, p.Delay())
}

func TestPacer_WaitCanceled(t *testing.T) {
	t.Parallel()

	p := NewPacer(time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPacer_WaitElapses(t *testing.T) {
	t.Parallel()

	p := NewPacer(time.Millisecond, time.Millisecond)
	require.NoError(t, p.Wait(context.Background()))
}
