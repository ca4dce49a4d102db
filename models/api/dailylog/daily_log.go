package dailylogapimodels

import (
	"strings"
	"time"

	apperror "timesheet-backend/lib/utils/app-error"
	timecalc "timesheet-backend/lib/utils/time-calc"
	"timesheet-backend/models"
	dbmodels "timesheet-backend/models/db"
)

// DailyLogData - запись о работе, присланная сотрудником. ID пустой (или "null") - новая запись
type DailyLogData struct {
	ID              *string `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	LogDate         string  `json:"log_date"`   // ГГГГ-ММ-ДД
	ProjectID       string  `json:"project_id"`
	StartTime       string  `json:"start_time"` // ЧЧ:ММ
	EndTime         string  `json:"end_time"`   // ЧЧ:ММ
	TaskDescription string  `json:"task_description"`
}

func (d DailyLogData) GetID() string {
	if d.ID == nil {
		return ""
	}
	id := strings.TrimSpace(*d.ID)
	if strings.EqualFold(id, "null") {
		return ""
	}
	return id
}

func (d DailyLogData) IsNew() bool {
	return d.GetID() == ""
}

func (d DailyLogData) Validate() error {
	if d.EmployeeID == "" || d.LogDate == "" || d.ProjectID == "" ||
		d.StartTime == "" || d.EndTime == "" || strings.TrimSpace(d.TaskDescription) == "" {
		return apperror.New(apperror.MissingField,
			"не заполнены обязательные поля: employee_id, log_date, project_id, start_time, end_time, task_description")
	}
	return nil
}

type DailyLogView struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	ProjectID       *string `json:"project_id"`
	ProjectName     string  `json:"project_name,omitempty"`
	LogDate         string  `json:"log_date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	TotalHours      float64 `json:"total_hours"`
	TaskDescription string  `json:"task_description"`
	StatusReview    string  `json:"status_review"`
	ReviewerID      *string `json:"reviewer_id"`
	ReviewerName    string  `json:"reviewer_name,omitempty"`
	RejectionReason *string `json:"rejection_reason"`
}

func DailyLogConvert(rec dbmodels.DailyLog) DailyLogView {
	return DailyLogView{
		ID:              rec.ID,
		EmployeeID:      rec.EmployeeID,
		EmployeeName:    rec.GetEmployeeName(),
		ProjectID:       rec.ProjectID,
		ProjectName:     rec.GetProjectName(),
		LogDate:         timecalc.FormatDate(rec.LogDate),
		StartTime:       rec.StartTime,
		EndTime:         rec.EndTime,
		TotalHours:      rec.TotalHours,
		TaskDescription: rec.TaskDescription,
		StatusReview:    string(rec.GetStatus()),
		ReviewerID:      rec.ReviewerID,
		ReviewerName:    rec.GetReviewerName(),
		RejectionReason: rec.RejectionReason,
	}
}

type DailyLogChangeView struct {
	ID              string    `json:"id"`
	DailyLogID      string    `json:"daily_log_id"`
	ProjectID       *string   `json:"project_id"`
	ChangedAt       time.Time `json:"changed_at"`
	NewDescription  string    `json:"new_description"`
	StatusReview    string    `json:"status_review"`
	ReviewerID      *string   `json:"reviewer_id"`
	ReviewerName    string    `json:"reviewer_name,omitempty"`
	RejectionReason *string   `json:"rejection_reason"`
}

func DailyLogChangeConvert(rec dbmodels.DailyLogChange) DailyLogChangeView {
	return DailyLogChangeView{
		ID:              rec.ID,
		DailyLogID:      rec.DailyLogID,
		ProjectID:       rec.ProjectID,
		ChangedAt:       rec.ChangedAt,
		NewDescription:  rec.NewDescription,
		StatusReview:    string(models.FromStored(rec.StatusReview)),
		ReviewerID:      rec.ReviewerID,
		ReviewerName:    rec.GetReviewerName(),
		RejectionReason: rec.RejectionReason,
	}
}

type DailyLogWithChanges struct {
	DailyLogView
	Changes []DailyLogChangeView `json:"changes"`
}

type DailyLogFilter struct {
	EmployeeID   string `json:"employee_id" query:"employee_id"`
	ReviewerID   string `json:"reviewer_id" query:"reviewer_id"`
	ProjectID    string `json:"project_id" query:"project_id"`
	StatusReview string `json:"status_review" query:"status_review"` // Pending/Approved/Rejected/all
	StartDate    string `json:"start_date" query:"start_date"`       // ГГГГ-ММ-ДД
	EndDate      string `json:"end_date" query:"end_date"`           // ГГГГ-ММ-ДД
}

func (f DailyLogFilter) Validate() error {
	_, err := f.Parse()
	return err
}

// ParsedFilter - фильтр в виде, готовом для запроса в БД
type ParsedFilter struct {
	EmployeeID string
	ReviewerID string
	ProjectID  string
	Status     *models.ReviewStatus
	StartDate  *time.Time
	EndDate    *time.Time
}

func (f DailyLogFilter) Parse() (ParsedFilter, error) {
	result := ParsedFilter{
		EmployeeID: f.EmployeeID,
		ReviewerID: f.ReviewerID,
	}
	if f.ProjectID != models.ReviewAll {
		result.ProjectID = f.ProjectID
	}
	if f.StatusReview != "" && !strings.EqualFold(f.StatusReview, models.ReviewAll) {
		status, ok := models.ParseReviewStatus(f.StatusReview)
		if !ok {
			return ParsedFilter{}, apperror.New(apperror.InvalidStatus, "некорректный статус: допустимы Pending, Approved, Rejected, all")
		}
		result.Status = &status
	}
	if f.StartDate != "" {
		date, err := timecalc.ParseDate(f.StartDate)
		if err != nil {
			return ParsedFilter{}, apperror.Wrap(apperror.InvalidDate, "некорректная дата начала периода", err)
		}
		result.StartDate = &date
	}
	if f.EndDate != "" {
		date, err := timecalc.ParseDate(f.EndDate)
		if err != nil {
			return ParsedFilter{}, apperror.Wrap(apperror.InvalidDate, "некорректная дата окончания периода", err)
		}
		result.EndDate = &date
	}
	if result.StartDate != nil && result.EndDate != nil && result.StartDate.After(*result.EndDate) {
		return ParsedFilter{}, apperror.New(apperror.InvalidDate, "дата начала периода позже даты окончания")
	}
	return result, nil
}

type ReviewRequest struct {
	LogID           string  `json:"log_id"`
	ReviewerID      string  `json:"reviewer_id"`
	StatusReview    string  `json:"status_review"`
	RejectionReason *string `json:"rejection_reason"`
}

func (r ReviewRequest) Validate() error {
	if r.LogID == "" || r.ReviewerID == "" || r.StatusReview == "" {
		return apperror.New(apperror.MissingField, "не заполнены обязательные поля: log_id, reviewer_id, status_review")
	}
	if _, ok := models.ParseReviewStatus(r.StatusReview); !ok {
		return apperror.New(apperror.InvalidStatus, "некорректный статус: допустимы Pending, Approved, Rejected")
	}
	return nil
}

type ProjectShortView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type ReviewerLogsView struct {
	Logs     []DailyLogView     `json:"logs"`
	Projects []ProjectShortView `json:"projects"`
}

type ReviewerLogsFilter struct {
	ReviewerID    string `json:"reviewer_id" query:"reviewer_id"`
	ReviewerEmail string `json:"reviewer_email" query:"reviewer_email"`
}

func (f ReviewerLogsFilter) Validate() error {
	if f.ReviewerID == "" && f.ReviewerEmail == "" {
		return apperror.New(apperror.MissingField, "не указан проверяющий: reviewer_id или reviewer_email")
	}
	return nil
}
