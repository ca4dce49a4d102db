package designationprovider

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"timesheet-backend/db"
	departmentstore "timesheet-backend/lib/dicts/department/store"
	designationstore "timesheet-backend/lib/dicts/designation/store"
	employeestore "timesheet-backend/lib/dicts/employee/store"
	apperror "timesheet-backend/lib/utils/app-error"
	initchecker "timesheet-backend/lib/utils/init-checker"
	dictapimodels "timesheet-backend/models/api/dict"
	dbmodels "timesheet-backend/models/db"
)

type Provider interface {
	Create(request dictapimodels.DesignationData) (id string, err error)
	Update(id string, request dictapimodels.DesignationData) error
	Get(id string) (item dictapimodels.DesignationView, err error)
	List(departmentID string) (list []dictapimodels.DesignationView, err error)
	Delete(id string) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		db:              db.DB,
		store:           designationstore.NewInstance(db.DB),
		departmentStore: departmentstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"db", instance.db,
		"store", instance.store,
		"departmentStore", instance.departmentStore,
	)
	Instance = instance
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		db:              tx,
		store:           designationstore.NewInstance(tx),
		departmentStore: departmentstore.NewInstance(tx),
	}
}

type impl struct {
	db              *gorm.DB
	store           designationstore.Provider
	departmentStore departmentstore.Provider
}

func (i impl) Create(request dictapimodels.DesignationData) (id string, err error) {
	if err = i.checkDepartment(request.DepartmentID); err != nil {
		return "", err
	}
	rec := dbmodels.Designation{
		Title:        request.Title,
		DepartmentID: request.DepartmentID,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	log.
		WithField("designation_title", rec.Title).
		WithField("department_id", rec.DepartmentID).
		WithField("rec_id", id).
		Info("создана должность")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.DesignationData) error {
	if _, err := i.getRec(id); err != nil {
		return err
	}
	if err := i.checkDepartment(request.DepartmentID); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"title":         request.Title,
		"department_id": request.DepartmentID,
	}
	err := i.store.Update(id, updMap)
	if err != nil {
		return err
	}
	log.WithField("rec_id", id).Info("обновлена должность")
	return nil
}

func (i impl) Get(id string) (item dictapimodels.DesignationView, err error) {
	rec, err := i.getRec(id)
	if err != nil {
		return dictapimodels.DesignationView{}, err
	}
	return dictapimodels.DesignationConvert(*rec), nil
}

func (i impl) List(departmentID string) (list []dictapimodels.DesignationView, err error) {
	recList, err := i.store.List(departmentID)
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения списка должностей")
	}
	list = make([]dictapimodels.DesignationView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.DesignationConvert(rec))
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	if _, err := i.getRec(id); err != nil {
		return err
	}
	err := i.db.Transaction(func(tx *gorm.DB) error {
		err := employeestore.NewInstance(tx).ClearDesignation([]string{id})
		if err != nil {
			return err
		}
		return designationstore.NewInstance(tx).Delete(id)
	})
	if err != nil {
		return err
	}
	log.WithField("rec_id", id).Info("удалена должность")
	return nil
}

func (i impl) getRec(id string) (*dbmodels.Designation, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения должности")
	}
	if rec == nil {
		return nil, apperror.New(apperror.NotFound, "должность не найдена")
	}
	return rec, nil
}

func (i impl) checkDepartment(departmentID string) error {
	rec, err := i.departmentStore.GetByID(departmentID)
	if err != nil {
		return apperror.FromStorage(err, "ошибка получения подразделения")
	}
	if rec == nil {
		return apperror.New(apperror.NotFound, "подразделение не найдено")
	}
	return nil
}
