package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"timesheet-backend/models"
	analyticsapimodels "timesheet-backend/models/api/analytics"
	dailylogapimodels "timesheet-backend/models/api/dailylog"
)

type Provider interface {
	ExportDailyLogs(list []dailylogapimodels.DailyLogView, summary *analyticsapimodels.TimesheetSummary) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const (
	logsSheet    = "Табель"
	summarySheet = "Итоги"
)

var (
	dailyLogHeaders = []string{"Дата", "Сотрудник", "Проект", "Начало", "Окончание", "Часы", "Описание", "Статус", "Проверяющий", "Причина отклонения"}
	dailyLogWidths  = []float64{12, 25, 25, 10, 10, 8, 50, 15, 25, 30}
	summaryHeaders  = []string{"Проект", "Часы"}
)

func (i impl) ExportDailyLogs(list []dailylogapimodels.DailyLogView, summary *analyticsapimodels.TimesheetSummary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row, err := writeHeader(f, sheet, 0, dailyLogHeaders, dailyLogWidths)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		_, err = writeDailyLogData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if err = f.SetSheetName(sheet, logsSheet); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа xlsx")
	}
	if summary != nil {
		if err = writeSummary(f, *summary); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования итогов в xlsx")
		}
	}
	return f.WriteToBuffer()
}

func writeDailyLogData(f *excelize.File, sheet string, list []dailylogapimodels.DailyLogView, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(dailyLogHeaders), row+len(list)); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		status := models.ReviewStatus(item.StatusReview).ToHuman()
		reason := ""
		if item.RejectionReason != nil {
			reason = *item.RejectionReason
		}
		values := []interface{}{
			item.LogDate,
			item.EmployeeName,
			item.ProjectName,
			item.StartTime,
			item.EndTime,
			item.TotalHours,
			item.TaskDescription,
			status,
			item.ReviewerName,
			reason,
		}
		for idx, value := range values {
			if err := writeColumn(f, sheet, idx+1, row, value); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

func writeSummary(f *excelize.File, summary analyticsapimodels.TimesheetSummary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	row, err := writeHeader(f, summarySheet, 0, summaryHeaders, []float64{30, 12})
	if err != nil {
		return err
	}
	for _, item := range summary.ByProject {
		row++
		name := item.ProjectName
		if name == "" {
			name = "Без проекта"
		}
		if err = writeColumn(f, summarySheet, 1, row, name); err != nil {
			return err
		}
		if err = writeColumn(f, summarySheet, 2, row, item.TotalHours); err != nil {
			return err
		}
	}
	row++
	if err = writeColumn(f, summarySheet, 1, row, "Всего"); err != nil {
		return err
	}
	return writeColumn(f, summarySheet, 2, row, summary.TotalHours)
}
