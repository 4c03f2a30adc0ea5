package jobs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/shared/database"
)

// testQueue returns a queue on TEST_DATABASE_URL with a queue name of its
// own. Tests are skipped when the variable is not set.
func testQueue(t *testing.T) (*Queue, string) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	dir, err := filepath.Abs("../../../migrations/finance")
	require.NoError(t, err)
	m, err := migrate.New("file://"+dir, url)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		require.NoError(t, err)
	}
	_, _ = m.Close()

	db, err := database.NewDB(url, false)
	require.NoError(t, err)
	name := "test-" + uuid.NewString()
	t.Cleanup(func() {
		db.GORM.Where("queue = ?", name).Delete(&Job{})
		_ = db.Close()
	})
	return NewQueue(db.GORM), name
}

func TestQueue_ReclaimsStaleProcessingJob(t *testing.T) {
	q, name := testQueue(t)
	ctx := context.Background()
	q.reclaimAfter(time.Minute)

	queued, err := q.Enqueue(ctx, TypeReceiptImport, map[string]string{"image_key": "k"}, EnqueueOptions{Queue: name})
	require.NoError(t, err)

	job, err := q.Dequeue(ctx, name)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, queued.ID, job.ID)
	assert.Equal(t, StatusProcessing, job.Status)

	job, err = q.Dequeue(ctx, name)
	require.NoError(t, err)
	assert.Nil(t, job, "a job within its timeout is not claimed twice")

	q.now = func() time.Time { return time.Now().Add(5 * time.Minute) }
	job, err = q.Dequeue(ctx, name)
	require.NoError(t, err)
	require.NotNil(t, job, "a job left processing past the stale threshold is reclaimed")
	assert.Equal(t, queued.ID, job.ID)
	assert.Equal(t, 2, job.Attempts)
}

func TestQueue_MarkFailedSchedulesRetry(t *testing.T) {
	q, name := testQueue(t)
	ctx := context.Background()

	_, err := q.Enqueue(ctx, TypeReceiptImport, map[string]string{}, EnqueueOptions{Queue: name})
	require.NoError(t, err)
	job, err := q.Dequeue(ctx, name)
	require.NoError(t, err)
	require.NotNil(t, job)

	require.NoError(t, q.MarkFailed(ctx, job.ID, errors.New("ocr unavailable")))
	stored, err := q.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRetrying, stored.Status)
	assert.Equal(t, "ocr unavailable", stored.Error)
}
