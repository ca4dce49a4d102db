package designationstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	apperror "timesheet-backend/lib/utils/app-error"
	dbmodels "timesheet-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Designation) (id string, err error)
	GetByID(id string) (rec *dbmodels.Designation, err error)
	List(departmentID string) (list []dbmodels.Designation, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	DeleteByDepartment(departmentID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Designation) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", apperror.Wrap(apperror.InvalidData, err.Error(), err)
	}
	err = i.db.
		Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", apperror.FromStorage(err, "ошибка сохранения должности")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Designation, error) {
	rec := dbmodels.Designation{}
	err := i.db.
		Where("id = ?", id).
		Preload("Department").
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

func (i impl) List(departmentID string) (list []dbmodels.Designation, err error) {
	list = []dbmodels.Designation{}
	tx := i.db.
		Preload("Department").
		Order("title ASC")
	if departmentID != "" {
		tx = tx.Where("department_id = ?", departmentID)
	}
	err = tx.Find(&list).Error
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
		Model(&dbmodels.Designation{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return apperror.FromStorage(err, "ошибка обновления должности")
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Designation{
		BaseModel: dbmodels.BaseModel{
			ID: id,
		},
	}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return apperror.FromStorage(err, "ошибка удаления должности")
	}
	return nil
}

func (i impl) DeleteByDepartment(departmentID string) error {
	err := i.db.
		Where("department_id = ?", departmentID).
		Delete(&dbmodels.Designation{}).
		Error
	if err != nil {
		return apperror.FromStorage(err, "ошибка удаления должностей подразделения")
	}
	return nil
}
