package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	analyticsapimodels "timesheet-backend/models/api/analytics"
	dailylogapimodels "timesheet-backend/models/api/dailylog"
)

type column struct {
	title string
	width float64
	value func(item dailylogapimodels.DailyLogView) string
}

// встроенные шрифты fpdf покрывают только cp1252, поэтому подписи в отчете на английском
var reportColumns = []column{
	{"Date", 22, func(item dailylogapimodels.DailyLogView) string { return item.LogDate }},
	{"Employee", 40, func(item dailylogapimodels.DailyLogView) string { return item.EmployeeName }},
	{"Project", 40, func(item dailylogapimodels.DailyLogView) string { return item.ProjectName }},
	{"Start", 14, func(item dailylogapimodels.DailyLogView) string { return item.StartTime }},
	{"End", 14, func(item dailylogapimodels.DailyLogView) string { return item.EndTime }},
	{"Hours", 14, func(item dailylogapimodels.DailyLogView) string { return fmt.Sprintf("%.2f", item.TotalHours) }},
	{"Task", 90, func(item dailylogapimodels.DailyLogView) string { return item.TaskDescription }},
	{"Status", 22, func(item dailylogapimodels.DailyLogView) string { return item.StatusReview }},
	{"Reviewer", 22, func(item dailylogapimodels.DailyLogView) string { return item.ReviewerName }},
}

// TimesheetReport формирует табель в PDF (A4, альбомная ориентация)
func TimesheetReport(title string, list []dailylogapimodels.DailyLogView, summary analyticsapimodels.TimesheetSummary) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("TimesheetReport panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Logs: %d   Hours: %.2f", summary.TotalLogs, summary.TotalHours), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	writeTableHeader(pdf)
	pdf.SetFont("Helvetica", "", 8)
	for idx, item := range list {
		fill := idx%2 == 1
		pdf.SetFillColor(242, 242, 242)
		for _, col := range reportColumns {
			pdf.CellFormat(col.width, 6, fitText(pdf, tr(col.value(item)), col.width), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		if pdf.GetY() > 190 {
			pdf.AddPage()
			writeTableHeader(pdf)
			pdf.SetFont("Helvetica", "", 8)
		}
	}

	if len(summary.ByProject) != 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 7, "Hours by project", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, item := range summary.ByProject {
			name := item.ProjectName
			if name == "" {
				name = "(no project)"
			}
			pdf.CellFormat(80, 6, fitText(pdf, tr(name), 80), "1", 0, "L", false, 0, "")
			pdf.CellFormat(20, 6, fmt.Sprintf("%.2f", item.TotalHours), "1", 1, "R", false, 0, "")
		}
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(221, 235, 247)
	for _, col := range reportColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

// fitText обрезает текст по ширине ячейки; текст уже в cp1252, один символ - один байт
func fitText(pdf *fpdf.Fpdf, text string, width float64) string {
	const padding = 2
	if pdf.GetStringWidth(text) <= width-padding {
		return text
	}
	for len(text) > 0 && pdf.GetStringWidth(text+"...") > width-padding {
		text = text[:len(text)-1]
	}
	return text + "..."
}
