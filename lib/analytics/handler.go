package analytics

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	dailyloghandler "timesheet-backend/lib/daily-log"
	pdfexport "timesheet-backend/lib/export/pdf"
	xlsexport "timesheet-backend/lib/export/xls"
	filestorage "timesheet-backend/lib/file-storage"
	initchecker "timesheet-backend/lib/utils/init-checker"
	timecalc "timesheet-backend/lib/utils/time-calc"
	"timesheet-backend/models"
	analyticsapimodels "timesheet-backend/models/api/analytics"
	dailylogapimodels "timesheet-backend/models/api/dailylog"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

type Provider interface {
	Timesheet(filter dailylogapimodels.DailyLogFilter) (analyticsapimodels.TimesheetSummary, error)
	TimesheetExportToXls(ctx context.Context, filter dailylogapimodels.DailyLogFilter) (*bytes.Buffer, error)
	TimesheetExportToPdf(ctx context.Context, filter dailylogapimodels.DailyLogFilter) ([]byte, error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		dailyLog: dailyloghandler.Instance,
		xls:      xlsexport.Instance,
		archive:  filestorage.Instance,
	}
	initchecker.CheckInit(
		"dailyLog", instance.dailyLog,
		"xls", instance.xls,
		"archive", instance.archive,
	)
	Instance = instance
}

func NewInstance(dailyLog dailyloghandler.Provider, xls xlsexport.Provider, archive filestorage.Provider) Provider {
	return impl{
		dailyLog: dailyLog,
		xls:      xls,
		archive:  archive,
	}
}

type impl struct {
	dailyLog dailyloghandler.Provider
	xls      xlsexport.Provider
	archive  filestorage.Provider
}

func (i impl) Timesheet(filter dailylogapimodels.DailyLogFilter) (analyticsapimodels.TimesheetSummary, error) {
	list, err := i.dailyLog.Filter(filter)
	if err != nil {
		return analyticsapimodels.TimesheetSummary{}, err
	}
	return Summarize(list), nil
}

func (i impl) TimesheetExportToXls(ctx context.Context, filter dailylogapimodels.DailyLogFilter) (*bytes.Buffer, error) {
	list, err := i.dailyLog.Filter(filter)
	if err != nil {
		return nil, err
	}
	summary := Summarize(list)
	buf, err := i.xls.ExportDailyLogs(list, &summary)
	if err != nil {
		return nil, err
	}
	i.toArchive(ctx, "timesheet.xlsx", xlsxContentType, buf.Bytes())
	return buf, nil
}

func (i impl) TimesheetExportToPdf(ctx context.Context, filter dailylogapimodels.DailyLogFilter) ([]byte, error) {
	list, err := i.dailyLog.Filter(filter)
	if err != nil {
		return nil, err
	}
	data, err := pdfexport.TimesheetReport(reportTitle(filter), list, Summarize(list))
	if err != nil {
		return nil, err
	}
	i.toArchive(ctx, "timesheet.pdf", pdfContentType, data)
	return data, nil
}

// toArchive - ошибка архива не мешает отдать отчет клиенту
func (i impl) toArchive(ctx context.Context, fileName, contentType string, data []byte) {
	if !i.archive.Enabled() {
		return
	}
	if _, err := i.archive.Upload(ctx, fileName, contentType, data); err != nil {
		log.WithError(err).WithField("file_name", fileName).Warn("не удалось сохранить отчет в архив")
	}
}

// Summarize - итоги по записям: количество, часы, статусы, часы по проектам
func Summarize(list []dailylogapimodels.DailyLogView) analyticsapimodels.TimesheetSummary {
	result := analyticsapimodels.TimesheetSummary{
		TotalLogs: len(list),
		StatusCounts: map[string]int{
			string(models.ReviewPending):  0,
			string(models.ReviewApproved): 0,
			string(models.ReviewRejected): 0,
		},
		ByProject: []analyticsapimodels.ProjectHours{},
	}
	byProject := map[string]*analyticsapimodels.ProjectHours{}
	var total float64
	for _, item := range list {
		total += item.TotalHours
		status := item.StatusReview
		if status == "" {
			status = string(models.ReviewPending)
		}
		result.StatusCounts[status]++

		key := ""
		if item.ProjectID != nil {
			key = *item.ProjectID
		}
		hours, ok := byProject[key]
		if !ok {
			hours = &analyticsapimodels.ProjectHours{
				ProjectID:   item.ProjectID,
				ProjectName: item.ProjectName,
			}
			byProject[key] = hours
		}
		hours.TotalHours += item.TotalHours
	}
	result.TotalHours = timecalc.Round2(total)
	for _, hours := range byProject {
		hours.TotalHours = timecalc.Round2(hours.TotalHours)
		result.ByProject = append(result.ByProject, *hours)
	}
	sort.Slice(result.ByProject, func(a, b int) bool {
		return result.ByProject[a].ProjectName < result.ByProject[b].ProjectName
	})
	return result
}

func reportTitle(filter dailylogapimodels.DailyLogFilter) string {
	switch {
	case filter.StartDate != "" && filter.EndDate != "":
		return fmt.Sprintf("Timesheet %s - %s", filter.StartDate, filter.EndDate)
	case filter.StartDate != "":
		return fmt.Sprintf("Timesheet from %s", filter.StartDate)
	case filter.EndDate != "":
		return fmt.Sprintf("Timesheet to %s", filter.EndDate)
	}
	return "Timesheet"
}
