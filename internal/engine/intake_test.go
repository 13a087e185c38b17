package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-catalog-importer/internal/queue"
	queueMocks "github.com/donaldgifford/ebay-catalog-importer/internal/queue/mocks"
	storeMocks "github.com/donaldgifford/ebay-catalog-importer/internal/store/mocks"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

var intakeNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestIntake(c *fakeCatalog, ms *storeMocks.MockStore, mp *queueMocks.MockPublisher) *Intake {
	return NewIntake(c, ms, mp,
		WithIntakeLogger(quietLogger()),
		WithETAEstimate(500*time.Millisecond, 5*time.Second),
		WithIntakeClock(func() time.Time { return intakeNow }, func() string { return "job-1" }),
	)
}

func TestBeginImport_QueuesJob(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	mp := queueMocks.NewMockPublisher(t)
	opts := domain.ImportOptions{"syncStrategy": "skip_existing"}

	ms.EXPECT().CreateImportJob(mock.Anything, mock.MatchedBy(func(j *domain.ImportJob) bool {
		return j.ID == "job-1" &&
			j.Status == domain.JobQueued &&
			j.TotalItems == 120 &&
			j.PageSize == 50 &&
			j.PagesTotal == 3 &&
			j.SellerUsername == "seller1" &&
			j.Options["syncStrategy"] == "skip_existing"
	})).Return(nil)
	mp.EXPECT().Publish(mock.Anything, queue.Message{
		JobID:                  "job-1",
		ShopDomain:             testShop,
		ExternalSellerIdentity: "seller1",
		Total:                  120,
		ImportOptions:          opts,
	}).Return(nil)

	in := newTestIntake(&fakeCatalog{total: 120, pageSize: 50}, ms, mp)
	res, err := in.BeginImport(context.Background(), testShop, "seller1", opts)
	require.NoError(t, err)

	assert.Equal(t, "job-1", res.JobID)
	assert.Equal(t, 120, res.TotalItems)
	assert.Equal(t, intakeNow.Add(3*5500*time.Millisecond), res.ETA)
}

func TestBeginImport_ZeroItemsQueuesNothing(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	mp := queueMocks.NewMockPublisher(t)

	in := newTestIntake(&fakeCatalog{total: 0, pageSize: 50}, ms, mp)
	res, err := in.BeginImport(context.Background(), testShop, "seller1", nil)
	require.NoError(t, err)

	assert.Equal(t, 0, res.TotalItems)
	assert.Empty(t, res.JobID)
	mp.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	ms.AssertNotCalled(t, "CreateImportJob", mock.Anything, mock.Anything)
}

func TestBeginImport_ProbeFailure(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	mp := queueMocks.NewMockPublisher(t)

	in := newTestIntake(&fakeCatalog{probeErr: errors.New("connection refused"), pageSize: 50}, ms, mp)
	_, err := in.BeginImport(context.Background(), testShop, "seller1", nil)
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestBeginImport_PublishFailureMarksJobFailed(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	mp := queueMocks.NewMockPublisher(t)

	ms.EXPECT().CreateImportJob(mock.Anything, mock.Anything).Return(nil)
	mp.EXPECT().Publish(mock.Anything, mock.Anything).Return(errors.New("redis: connection refused"))
	ms.EXPECT().FinishImportJob(mock.Anything, "job-1", domain.JobFailed,
		mock.MatchedBy(func(reason string) bool { return reason != "" })).Return(nil)

	in := newTestIntake(&fakeCatalog{total: 10, pageSize: 50}, ms, mp)
	res, err := in.BeginImport(context.Background(), testShop, "seller1", nil)
	require.ErrorIs(t, err, domain.ErrQueuePublish)
	assert.Nil(t, res)
}

func TestBeginImport_CreateJobFailure(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	mp := queueMocks.NewMockPublisher(t)
	ms.EXPECT().CreateImportJob(mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	in := newTestIntake(&fakeCatalog{total: 10, pageSize: 50}, ms, mp)
	_, err := in.BeginImport(context.Background(), testShop, "seller1", nil)
	require.Error(t, err)
	mp.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
