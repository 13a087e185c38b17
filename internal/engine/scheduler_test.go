package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-catalog-importer/internal/metrics"
	storeMocks "github.com/donaldgifford/ebay-catalog-importer/internal/store/mocks"
)

type stubSweeper struct {
	n   int64
	err error
}

func (s stubSweeper) SweepExpired(context.Context) (int64, error) { return s.n, s.err }

func newTestScheduler(t *testing.T, sweeper QuotaSweeper) (*Scheduler, *storeMocks.MockStore) {
	t.Helper()
	ms := storeMocks.NewMockStore(t)
	sched, err := NewScheduler(ms, sweeper, DefaultScheduleConfig(), quietLogger())
	require.NoError(t, err)
	return sched, ms
}

func TestNewScheduler_RegistersCronEntries(t *testing.T) {
	t.Parallel()

	sched, _ := newTestScheduler(t, stubSweeper{})
	assert.Len(t, sched.Entries(), 3)
}

func TestNewScheduler_SkipsDisabledTasks(t *testing.T) {
	t.Parallel()

	cfg := DefaultScheduleConfig()
	cfg.QueueCleanupInterval = 0
	sched, err := NewScheduler(storeMocks.NewMockStore(t), stubSweeper{}, cfg, quietLogger())
	require.NoError(t, err)
	assert.Len(t, sched.Entries(), 2)
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	sched, _ := newTestScheduler(t, stubSweeper{})
	sched.Start()
	ctx := sched.Stop()
	<-ctx.Done()
}

func TestScheduler_RunJobRecordsSuccess(t *testing.T) {
	t.Parallel()

	sched, ms := newTestScheduler(t, stubSweeper{n: 4})
	before := ptestutil.ToFloat64(metrics.SchedulerRunsTotal.WithLabelValues(TaskQuotaSweep, "succeeded"))

	ms.EXPECT().AcquireSchedulerLock(mock.Anything, TaskQuotaSweep, sched.holder, time.Hour).Return(true, nil)
	ms.EXPECT().InsertJobRun(mock.Anything, TaskQuotaSweep).Return("run-1", nil)
	ms.EXPECT().CompleteJobRun(mock.Anything, "run-1", "succeeded", "", 4).Return(nil)
	ms.EXPECT().ReleaseSchedulerLock(mock.Anything, TaskQuotaSweep, sched.holder).Return(nil)

	require.NoError(t, sched.RunNow(context.Background(), TaskQuotaSweep))

	after := ptestutil.ToFloat64(metrics.SchedulerRunsTotal.WithLabelValues(TaskQuotaSweep, "succeeded"))
	assert.GreaterOrEqual(t, after-before, 1.0)
}

func TestScheduler_RunJobRecordsFailure(t *testing.T) {
	t.Parallel()

	sched, ms := newTestScheduler(t, stubSweeper{})

	ms.EXPECT().AcquireSchedulerLock(mock.Anything, TaskStuckReaper, sched.holder, 5*time.Minute).Return(true, nil)
	ms.EXPECT().InsertJobRun(mock.Anything, TaskStuckReaper).Return("run-2", nil)
	ms.EXPECT().ReapStuckJobs(mock.Anything, 3*time.Hour).Return(0, errors.New("db down"))
	ms.EXPECT().CompleteJobRun(mock.Anything, "run-2", "failed", "db down", 0).Return(nil)
	ms.EXPECT().ReleaseSchedulerLock(mock.Anything, TaskStuckReaper, sched.holder).Return(nil)

	err := sched.RunNow(context.Background(), TaskStuckReaper)
	require.Error(t, err)
}

func TestScheduler_RunJobSkipsWhenLockHeld(t *testing.T) {
	t.Parallel()

	sched, ms := newTestScheduler(t, stubSweeper{})
	ms.EXPECT().AcquireSchedulerLock(mock.Anything, TaskQueueCleanup, sched.holder, 24*time.Hour).Return(false, nil)

	require.NoError(t, sched.RunNow(context.Background(), TaskQueueCleanup))
	ms.AssertNotCalled(t, "InsertJobRun", mock.Anything, mock.Anything)
}

func TestScheduler_QueueCleanup(t *testing.T) {
	t.Parallel()

	sched, ms := newTestScheduler(t, stubSweeper{})
	ms.EXPECT().AcquireSchedulerLock(mock.Anything, TaskQueueCleanup, sched.holder, 24*time.Hour).Return(true, nil)
	ms.EXPECT().InsertJobRun(mock.Anything, TaskQueueCleanup).Return("run-3", nil)
	ms.EXPECT().PurgeAckedImports(mock.Anything, 7*24*time.Hour).Return(12, nil)
	ms.EXPECT().CompleteJobRun(mock.Anything, "run-3", "succeeded", "", 12).Return(nil)
	ms.EXPECT().ReleaseSchedulerLock(mock.Anything, TaskQueueCleanup, sched.holder).Return(nil)

	require.NoError(t, sched.RunNow(context.Background(), TaskQueueCleanup))
}

func TestScheduler_RunNowUnknownTask(t *testing.T) {
	t.Parallel()

	sched, _ := newTestScheduler(t, stubSweeper{})
	require.ErrorIs(t, sched.RunNow(context.Background(), "nope"), ErrUnknownTask)
}

func TestScheduler_RecoverStaleJobRuns(t *testing.T) {
	t.Parallel()

	sched, ms := newTestScheduler(t, stubSweeper{})
	ms.EXPECT().RecoverStaleJobRuns(mock.Anything, 2*time.Hour).Return(2, nil)
	sched.RecoverStaleJobRuns(context.Background())
}
