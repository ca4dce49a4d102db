package retentionworker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	baseworker "timesheet-backend/lib/utils/base-worker"
)

type archiveMock struct {
	olderThan time.Time
	calls     int
}

func (m *archiveMock) Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	return "", nil
}

func (m *archiveMock) Purge(ctx context.Context, olderThan time.Time) (int, error) {
	m.calls++
	m.olderThan = olderThan
	return 2, nil
}

func (m *archiveMock) Enabled() bool {
	return true
}

func TestRetentionWorker(t *testing.T) {
	t.Run(`purges reports older than retention`, func(t *testing.T) {
		now := time.Date(2025, time.March, 1, 3, 0, 0, 0, time.UTC)
		archive := &archiveMock{}
		i := impl{
			BaseImpl:  *baseworker.NewInstance("test", 0, time.Hour),
			archive:   archive,
			retention: 30 * 24 * time.Hour,
			now:       func() time.Time { return now },
		}
		i.handle(context.Background())
		require.Equal(t, 1, archive.calls)
		require.Equal(t, time.Date(2025, time.January, 30, 3, 0, 0, 0, time.UTC), archive.olderThan)
	})
}
