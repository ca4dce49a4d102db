package dailylogchangestore

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	dbmodels "timesheet-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.DailyLogChange) (id string, err error)
	ListByLog(logID string) (list []dbmodels.DailyLogChange, err error)
	ListByLogs(logIDs []string) (list []dbmodels.DailyLogChange, err error)
	LogIDsByReviewer(reviewerID string) (ids []string, err error)
	ClearProject(projectID string) error
	ClearReviewer(employeeID string) error
	DeleteByEmployee(employeeID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.DailyLogChange) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByLog(logID string) (list []dbmodels.DailyLogChange, err error) {
	return i.ListByLogs([]string{logID})
}

// ListByLogs - история изменений, новые записи первыми
func (i impl) ListByLogs(logIDs []string) (list []dbmodels.DailyLogChange, err error) {
	list = []dbmodels.DailyLogChange{}
	if len(logIDs) == 0 {
		return list, nil
	}
	err = i.db.
		Where("daily_log_id IN ?", logIDs).
		Preload("Reviewer").
		Order("changed_at DESC").
		Order("created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) LogIDsByReviewer(reviewerID string) (ids []string, err error) {
	ids = []string{}
	err = i.db.
		Model(&dbmodels.DailyLogChange{}).
		Where("reviewer_id = ?", reviewerID).
		Distinct("daily_log_id").
		Pluck("daily_log_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (i impl) ClearProject(projectID string) error {
	return i.db.
		Model(&dbmodels.DailyLogChange{}).
		Where("project_id = ?", projectID).
		Update("project_id", nil).
		Error
}

func (i impl) ClearReviewer(employeeID string) error {
	return i.db.
		Model(&dbmodels.DailyLogChange{}).
		Where("reviewer_id = ?", employeeID).
		Update("reviewer_id", nil).
		Error
}

// DeleteByEmployee удаляет историю всех записей сотрудника
func (i impl) DeleteByEmployee(employeeID string) error {
	return i.db.
		Where("daily_log_id IN (?)", i.db.Model(&dbmodels.DailyLog{}).Select("id").Where("employee_id = ?", employeeID)).
		Delete(&dbmodels.DailyLogChange{}).
		Error
}
