package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

func TestNoOpNotifier_JobFinished(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := n.JobFinished(context.Background(), &JobSummary{
		JobID:      "job-1",
		ShopDomain: "vintage.myshopify.com",
		Status:     domain.JobCompleted,
	})
	require.NoError(t, err)
}

// compile-time interface check.
var _ Notifier = (*NoOpNotifier)(nil)
