package projectstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	apperror "timesheet-backend/lib/utils/app-error"
	dbmodels "timesheet-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Project) (id string, err error)
	GetByID(id string) (rec *dbmodels.Project, err error)
	List() (list []dbmodels.Project, err error)
	ListByIDs(ids []string) (list []dbmodels.Project, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Project) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", apperror.Wrap(apperror.InvalidData, err.Error(), err)
	}
	err = i.isUnique("", rec.Name)
	if err != nil {
		return "", err
	}
	err = i.db.
		Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", apperror.FromStorage(err, "ошибка сохранения проекта")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Project, error) {
	rec := dbmodels.Project{}
	err := i.db.
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

func (i impl) List() (list []dbmodels.Project, err error) {
	list = []dbmodels.Project{}
	err = i.db.
		Order("name ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByIDs(ids []string) (list []dbmodels.Project, err error) {
	list = []dbmodels.Project{}
	if len(ids) == 0 {
		return list, nil
	}
	err = i.db.
		Where("id IN ?", ids).
		Order("name ASC").
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
	name, ok := updMap["name"]
	if ok {
		err := i.isUnique(id, name.(string))
		if err != nil {
			return err
		}
	}
	err := i.db.
		Model(&dbmodels.Project{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return apperror.FromStorage(err, "ошибка обновления проекта")
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Project{
		BaseModel: dbmodels.BaseModel{
			ID: id,
		},
	}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return apperror.FromStorage(err, "ошибка удаления проекта")
	}
	return nil
}

func (i impl) isUnique(selfID, name string) error {
	var rowCount int64
	tx := i.db.Model(dbmodels.Project{})
	tx.Where("name = ?", name)
	if selfID != "" {
		tx.Where("id <> ?", selfID)
	}
	err := tx.Count(&rowCount).Error
	if err != nil {
		return errors.Wrap(err, "ошибка проверки уникальности проекта")
	}
	if rowCount != 0 {
		return apperror.New(apperror.ConstraintViolation, "проект с таким названием уже существует")
	}
	return nil
}
