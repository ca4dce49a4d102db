package managerprojectstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	dbmodels "timesheet-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ManagerProjectAssignment) (id string, err error)
	Find(managerID, projectID string, employeeID *string) (rec *dbmodels.ManagerProjectAssignment, err error)
	GetByID(id string) (rec *dbmodels.ManagerProjectAssignment, err error)
	Delete(id string) error
	ListByManager(managerID string) (list []dbmodels.ManagerProjectAssignment, err error)
	ListSupervised() (list []dbmodels.ManagerProjectAssignment, err error)
	ProjectIDsForUser(userID string) (ids []string, err error)
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

func (i impl) Create(rec dbmodels.ManagerProjectAssignment) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// Find ищет точное совпадение тройки, employeeID == nil - строка без сотрудника
func (i impl) Find(managerID, projectID string, employeeID *string) (*dbmodels.ManagerProjectAssignment, error) {
	rec := dbmodels.ManagerProjectAssignment{}
	tx := i.db.
		Where("manager_id = ?", managerID).
		Where("project_id = ?", projectID)
	if employeeID == nil {
		tx = tx.Where("employee_id IS NULL")
	} else {
		tx = tx.Where("employee_id = ?", *employeeID)
	}
	err := tx.First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByID(id string) (*dbmodels.ManagerProjectAssignment, error) {
	rec := dbmodels.ManagerProjectAssignment{}
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

func (i impl) Delete(id string) error {
	rec := dbmodels.ManagerProjectAssignment{
		BaseModel: dbmodels.BaseModel{
			ID: id,
		},
	}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ListByManager(managerID string) (list []dbmodels.ManagerProjectAssignment, err error) {
	list = []dbmodels.ManagerProjectAssignment{}
	err = i.withRelations(i.db).
		Where("manager_id = ?", managerID).
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListSupervised - все строки с указанным сотрудником
func (i impl) ListSupervised() (list []dbmodels.ManagerProjectAssignment, err error) {
	list = []dbmodels.ManagerProjectAssignment{}
	err = i.withRelations(i.db).
		Where("employee_id IS NOT NULL").
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ProjectIDsForUser(userID string) (ids []string, err error) {
	ids = []string{}
	err = i.db.
		Model(&dbmodels.ManagerProjectAssignment{}).
		Where("manager_id = ? OR employee_id = ?", userID, userID).
		Distinct("project_id").
		Pluck("project_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (i impl) withRelations(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Manager").
		Preload("Project").
		Preload("Employee")
}

func (i impl) DeleteByProject(projectID string) error {
	return i.db.
		Where("project_id = ?", projectID).
		Delete(&dbmodels.ManagerProjectAssignment{}).
		Error
}

// DeleteByEmployee удаляет строки, где сотрудник руководитель или подчиненный
func (i impl) DeleteByEmployee(employeeID string) error {
	return i.db.
		Where("manager_id = ? OR employee_id = ?", employeeID, employeeID).
		Delete(&dbmodels.ManagerProjectAssignment{}).
		Error
}
