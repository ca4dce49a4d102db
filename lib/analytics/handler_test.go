package analytics

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	dailyloghandler "timesheet-backend/lib/daily-log"
	xlsexport "timesheet-backend/lib/export/xls"
	filestorage "timesheet-backend/lib/file-storage"
	apperror "timesheet-backend/lib/utils/app-error"
	analyticsapimodels "timesheet-backend/models/api/analytics"
	dailylogapimodels "timesheet-backend/models/api/dailylog"
)

type dailyLogMock struct {
	dailyloghandler.Provider
	list   []dailylogapimodels.DailyLogView
	err    error
	filter dailylogapimodels.DailyLogFilter
}

func (m *dailyLogMock) Filter(filter dailylogapimodels.DailyLogFilter) ([]dailylogapimodels.DailyLogView, error) {
	m.filter = filter
	return m.list, m.err
}

type archiveMock struct {
	uploaded []string
	err      error
}

func (m *archiveMock) Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	m.uploaded = append(m.uploaded, fileName)
	return "reports/" + fileName, m.err
}

func (m *archiveMock) Purge(ctx context.Context, olderThan time.Time) (int, error) {
	return 0, nil
}

func (m *archiveMock) Enabled() bool {
	return true
}

func strPtr(value string) *string {
	return &value
}

func sampleLogs() []dailylogapimodels.DailyLogView {
	return []dailylogapimodels.DailyLogView{
		{ID: "1", ProjectID: strPtr("p2"), ProjectName: "Beta", LogDate: "2025-01-10", StartTime: "09:00", EndTime: "10:20", TotalHours: 1.33, StatusReview: "Pending", TaskDescription: "work"},
		{ID: "2", ProjectID: strPtr("p1"), ProjectName: "Alpha", LogDate: "2025-01-10", StartTime: "10:20", EndTime: "11:40", TotalHours: 1.33, StatusReview: "Approved", TaskDescription: "work"},
		{ID: "3", ProjectID: strPtr("p2"), ProjectName: "Beta", LogDate: "2025-01-11", StartTime: "09:00", EndTime: "10:20", TotalHours: 1.33, StatusReview: "Approved", TaskDescription: "work"},
		{ID: "4", ProjectID: nil, LogDate: "2025-01-11", StartTime: "11:00", EndTime: "11:30", TotalHours: 0.5, StatusReview: "", TaskDescription: "orphan"},
	}
}

func TestSummarize(t *testing.T) {
	t.Run(`empty list`, func(t *testing.T) {
		summary := Summarize(nil)
		require.Equal(t, 0, summary.TotalLogs)
		require.Equal(t, 0.0, summary.TotalHours)
		require.Equal(t, map[string]int{"Pending": 0, "Approved": 0, "Rejected": 0}, summary.StatusCounts)
		require.Empty(t, summary.ByProject)
	})

	t.Run(`totals by status and project`, func(t *testing.T) {
		summary := Summarize(sampleLogs())
		require.Equal(t, 4, summary.TotalLogs)
		require.Equal(t, 4.49, summary.TotalHours)
		require.Equal(t, map[string]int{"Pending": 2, "Approved": 2, "Rejected": 0}, summary.StatusCounts)
		require.Equal(t, []analyticsapimodels.ProjectHours{
			{ProjectID: nil, ProjectName: "", TotalHours: 0.5},
			{ProjectID: strPtr("p1"), ProjectName: "Alpha", TotalHours: 1.33},
			{ProjectID: strPtr("p2"), ProjectName: "Beta", TotalHours: 2.66},
		}, summary.ByProject)
	})
}

func TestExport(t *testing.T) {
	xlsexport.NewHandler()

	t.Run(`timesheet passes filter through`, func(t *testing.T) {
		dailyLog := &dailyLogMock{list: sampleLogs()}
		handler := NewInstance(dailyLog, xlsexport.Instance, filestorage.NewInstance(nil, ""))
		filter := dailylogapimodels.DailyLogFilter{EmployeeID: "e1", StartDate: "2025-01-01"}
		summary, err := handler.Timesheet(filter)
		require.NoError(t, err)
		require.Equal(t, filter, dailyLog.filter)
		require.Equal(t, 4, summary.TotalLogs)
	})

	t.Run(`filter errors are returned as is`, func(t *testing.T) {
		dailyLog := &dailyLogMock{err: apperror.New(apperror.InvalidDate, "bad date")}
		handler := NewInstance(dailyLog, xlsexport.Instance, filestorage.NewInstance(nil, ""))
		_, err := handler.TimesheetExportToXls(context.Background(), dailylogapimodels.DailyLogFilter{})
		require.True(t, apperror.Is(err, apperror.InvalidDate))
		_, err = handler.TimesheetExportToPdf(context.Background(), dailylogapimodels.DailyLogFilter{})
		require.True(t, apperror.Is(err, apperror.InvalidDate))
	})

	t.Run(`xlsx is built and archived`, func(t *testing.T) {
		archive := &archiveMock{}
		handler := NewInstance(&dailyLogMock{list: sampleLogs()}, xlsexport.Instance, archive)
		buf, err := handler.TimesheetExportToXls(context.Background(), dailylogapimodels.DailyLogFilter{})
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))
		require.Equal(t, []string{"timesheet.xlsx"}, archive.uploaded)
	})

	t.Run(`pdf is built even if archive fails`, func(t *testing.T) {
		archive := &archiveMock{err: errors.New("s3 unavailable")}
		handler := NewInstance(&dailyLogMock{list: sampleLogs()}, xlsexport.Instance, archive)
		data, err := handler.TimesheetExportToPdf(context.Background(), dailylogapimodels.DailyLogFilter{StartDate: "2025-01-10", EndDate: "2025-01-11"})
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(data, []byte("%PDF")))
		require.Equal(t, []string{"timesheet.pdf"}, archive.uploaded)
	})

	t.Run(`report title`, func(t *testing.T) {
		require.Equal(t, "Timesheet", reportTitle(dailylogapimodels.DailyLogFilter{}))
		require.Equal(t, "Timesheet from 2025-01-10", reportTitle(dailylogapimodels.DailyLogFilter{StartDate: "2025-01-10"}))
		require.Equal(t, "Timesheet 2025-01-10 - 2025-01-11",
			reportTitle(dailylogapimodels.DailyLogFilter{StartDate: "2025-01-10", EndDate: "2025-01-11"}))
	})
}
