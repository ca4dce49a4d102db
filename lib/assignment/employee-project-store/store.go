package employeeprojectstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	dbmodels "timesheet-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.EmployeeProject) (id string, err error)
	Get(employeeID, projectID string) (rec *dbmodels.EmployeeProject, err error)
	Delete(employeeID, projectID string) (deleted bool, err error)
	List() (list []dbmodels.EmployeeProject, err error)
	ProjectIDsByEmployee(employeeID string) (ids []string, err error)
	DeleteByProject(projectID string) error
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

func (i impl) Create(rec dbmodels.EmployeeProject) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Get(employeeID, projectID string) (*dbmodels.EmployeeProject, error) {
	rec := dbmodels.EmployeeProject{}
	err := i.db.
		Where("employee_id = ?", employeeID).
		Where("project_id = ?", projectID).
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

func (i impl) Delete(employeeID, projectID string) (deleted bool, err error) {
	tx := i.db.
		Where("employee_id = ?", employeeID).
		Where("project_id = ?", projectID).
		Delete(&dbmodels.EmployeeProject{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected != 0, nil
}

func (i impl) List() (list []dbmodels.EmployeeProject, err error) {
	list = []dbmodels.EmployeeProject{}
	err = i.db.
		Preload("Employee").
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ProjectIDsByEmployee(employeeID string) (ids []string, err error) {
	ids = []string{}
	err = i.db.
		Model(&dbmodels.EmployeeProject{}).
		Where("employee_id = ?", employeeID).
		Pluck("project_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (i impl) DeleteByProject(projectID string) error {
	return i.db.
		Where("project_id = ?", projectID).
		Delete(&dbmodels.EmployeeProject{}).
		Error
}

func (i impl) DeleteByEmployee(employeeID string) error {
	return i.db.
		Where("employee_id = ?", employeeID).
		Delete(&dbmodels.EmployeeProject{}).
		Error
}
