package retentionworker

import (
	"context"
	"time"

	filestorage "timesheet-backend/lib/file-storage"
	baseworker "timesheet-backend/lib/utils/base-worker"
)

// StartWorker периодически удаляет из архива отчеты старше retention
func StartWorker(ctx context.Context, archive filestorage.Provider, retention time.Duration) {
	if !archive.Enabled() || retention <= 0 {
		return
	}
	i := &impl{
		BaseImpl:  *baseworker.NewInstance("ReportRetentionWorker", time.Minute, 24*time.Hour),
		archive:   archive,
		retention: retention,
		now:       time.Now,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	archive   filestorage.Provider
	retention time.Duration
	now       func() time.Time
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	olderThan := i.now().Add(-i.retention)
	removed, err := i.archive.Purge(ctx, olderThan)
	if err != nil {
		logger.WithError(err).Error("ошибка очистки архива отчетов")
	}
	if removed > 0 {
		logger.
			WithField("removed", removed).
			WithField("older_than", olderThan.Format(time.RFC3339)).
			Info("из архива удалены устаревшие отчеты")
	}
}
