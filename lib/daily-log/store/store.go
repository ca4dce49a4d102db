package dailylogstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"timesheet-backend/db"
	"timesheet-backend/lib/utils/lock"
	"timesheet-backend/models"
	dailylogapimodels "timesheet-backend/models/api/dailylog"
	dbmodels "timesheet-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.DailyLog) (id string, err error)
	GetByID(id string) (rec *dbmodels.DailyLog, err error)
	ListByEmployeeDate(employeeID string, logDate time.Time, excludeID string) (list []dbmodels.DailyLog, err error)
	List(filter dailylogapimodels.ParsedFilter) (list []dbmodels.DailyLog, err error)
	ListForReviewer(reviewerID string, historicalIDs []string) (list []dbmodels.DailyLog, err error)
	Update(id string, updMap map[string]interface{}) error
	UpdateForReviewer(id, reviewerID string, updMap map[string]interface{}) (updated bool, err error)
	LockPartition(keys []string) error
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

func (i impl) Create(rec dbmodels.DailyLog) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.DailyLog, error) {
	rec := dbmodels.DailyLog{}
	err := i.withRelations(i.db).
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListByEmployeeDate(employeeID string, logDate time.Time, excludeID string) (list []dbmodels.DailyLog, err error) {
	list = []dbmodels.DailyLog{}
	tx := i.db.
		Where("employee_id = ?", employeeID).
		Where("log_date = ?", logDate)
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	err = tx.
		Order("start_time ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) List(filter dailylogapimodels.ParsedFilter) (list []dbmodels.DailyLog, err error) {
	list = []dbmodels.DailyLog{}
	tx := i.withRelations(i.db.Model(&dbmodels.DailyLog{}))
	if filter.EmployeeID != "" {
		tx = tx.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.ReviewerID != "" {
		tx = tx.Where("reviewer_id = ?", filter.ReviewerID)
	}
	if filter.ProjectID != "" {
		tx = tx.Where("project_id = ?", filter.ProjectID)
	}
	if filter.Status != nil {
		if *filter.Status == models.ReviewPending {
			// null и "Pending" - одно и то же состояние
			tx = tx.Where("(status_review IS NULL OR status_review = ?)", string(models.ReviewPending))
		} else {
			tx = tx.Where("status_review = ?", string(*filter.Status))
		}
	}
	if filter.StartDate != nil {
		tx = tx.Where("log_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		tx = tx.Where("log_date <= ?", *filter.EndDate)
	}
	err = tx.
		Order("log_date DESC").
		Order("start_time ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListForReviewer(reviewerID string, historicalIDs []string) (list []dbmodels.DailyLog, err error) {
	list = []dbmodels.DailyLog{}
	tx := i.withRelations(i.db.Model(&dbmodels.DailyLog{}))
	if len(historicalIDs) != 0 {
		tx = tx.Where("reviewer_id = ? OR id IN ?", reviewerID, historicalIDs)
	} else {
		tx = tx.Where("reviewer_id = ?", reviewerID)
	}
	err = tx.
		Order("log_date DESC").
		Order("start_time ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.DailyLog{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

// UpdateForReviewer меняет запись, только если она сейчас назначена этому проверяющему
func (i impl) UpdateForReviewer(id, reviewerID string, updMap map[string]interface{}) (updated bool, err error) {
	tx := i.db.
		Model(&dbmodels.DailyLog{}).
		Where("id = ?", id).
		Where("reviewer_id = ?", reviewerID).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected != 0, nil
}

// LockPartition берет транзакционные advisory-блокировки, работает только внутри транзакции postgres.
// Ключи захватываются в отсортированном порядке, иначе встречные пакеты взаимно блокируются
func (i impl) LockPartition(keys []string) error {
	if !db.IsPostgres(i.db) {
		return nil
	}
	for _, key := range lock.UniqueSorted(keys) {
		err := i.db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error
		if err != nil {
			return errors.Wrapf(err, "ошибка блокировки %s", key)
		}
	}
	return nil
}

func (i impl) withRelations(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Employee").
		Preload("Project").
		Preload("Reviewer")
}

func (i impl) ClearProject(projectID string) error {
	return i.db.
		Model(&dbmodels.DailyLog{}).
		Where("project_id = ?", projectID).
		Update("project_id", nil).
		Error
}

func (i impl) ClearReviewer(employeeID string) error {
	return i.db.
		Model(&dbmodels.DailyLog{}).
		Where("reviewer_id = ?", employeeID).
		Update("reviewer_id", nil).
		Error
}

func (i impl) DeleteByEmployee(employeeID string) error {
	return i.db.
		Where("employee_id = ?", employeeID).
		Delete(&dbmodels.DailyLog{}).
		Error
}
