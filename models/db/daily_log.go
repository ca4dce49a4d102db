package dbmodels

import (
	"time"
	"timesheet-backend/models"
)

type DailyLog struct {
	BaseModel
	EmployeeID      string               `gorm:"type:varchar(36);index:idx_employee_date"`
	Employee        *Employee            `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	ProjectID       *string              `gorm:"type:varchar(36);index"`
	Project         *Project             `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL"`
	LogDate         time.Time            `gorm:"type:date;index:idx_employee_date"`
	StartTime       string               `gorm:"type:varchar(5)"` // HH:MM
	EndTime         string               `gorm:"type:varchar(5)"` // HH:MM
	TotalHours      float64              `gorm:"not null"`
	TaskDescription string               `gorm:"type:varchar(255)"`
	StatusReview    *models.ReviewStatus `gorm:"type:varchar(50)"`
	ReviewerID      *string              `gorm:"type:varchar(36);index"`
	Reviewer        *Employee            `gorm:"foreignKey:ReviewerID;constraint:OnDelete:SET NULL"`
	RejectionReason *string              `gorm:"type:varchar(255)"`

	Changes []DailyLogChange `gorm:"foreignKey:DailyLogID;constraint:OnDelete:CASCADE"`
}

func (d DailyLog) GetStatus() models.ReviewStatus {
	return models.FromStored(d.StatusReview)
}

func (d DailyLog) GetEmployeeName() string {
	if d.Employee == nil {
		return ""
	}
	return d.Employee.EmployeeName
}

func (d DailyLog) GetProjectName() string {
	if d.Project == nil {
		return ""
	}
	return d.Project.Name
}

func (d DailyLog) GetReviewerName() string {
	if d.Reviewer == nil {
		return ""
	}
	return d.Reviewer.EmployeeName
}

// DailyLogChange - неизменяемая запись истории: описание и состояние проверки на момент изменения
type DailyLogChange struct {
	BaseModel
	DailyLogID      string               `gorm:"type:varchar(36);index"`
	ProjectID       *string              `gorm:"type:varchar(36)"`
	Project         *Project             `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL"`
	ChangedAt       time.Time            `gorm:"index"`
	NewDescription  string               `gorm:"type:varchar(255)"`
	StatusReview    *models.ReviewStatus `gorm:"type:varchar(50)"`
	ReviewerID      *string              `gorm:"type:varchar(36);index"`
	Reviewer        *Employee            `gorm:"foreignKey:ReviewerID;constraint:OnDelete:SET NULL"`
	RejectionReason *string              `gorm:"type:varchar(255)"`
}

func (c DailyLogChange) GetReviewerName() string {
	if c.Reviewer == nil {
		return ""
	}
	return c.Reviewer.EmployeeName
}
