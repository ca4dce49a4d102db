package departmentprovider

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
	Create(request dictapimodels.DepartmentData) (id string, err error)
	Update(id string, request dictapimodels.DepartmentData) error
	Get(id string) (item dictapimodels.DepartmentView, err error)
	List() (list []dictapimodels.DepartmentView, err error)
	Delete(id string) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		db:    db.DB,
		store: departmentstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"db", instance.db,
		"store", instance.store,
	)
	Instance = instance
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		db:    tx,
		store: departmentstore.NewInstance(tx),
	}
}

type impl struct {
	db    *gorm.DB
	store departmentstore.Provider
}

func (i impl) Create(request dictapimodels.DepartmentData) (id string, err error) {
	rec := dbmodels.Department{
		Name: request.Name,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	log.
		WithField("department_name", rec.Name).
		WithField("rec_id", id).
		Info("создано подразделение")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.DepartmentData) error {
	logger := log.WithField("rec_id", id)
	if _, err := i.getRec(id); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"name": request.Name,
	}
	err := i.store.Update(id, updMap)
	if err != nil {
		return err
	}
	logger.Info("обновлено подразделение")
	return nil
}

func (i impl) Get(id string) (item dictapimodels.DepartmentView, err error) {
	rec, err := i.getRec(id)
	if err != nil {
		return dictapimodels.DepartmentView{}, err
	}
	return dictapimodels.DepartmentConvert(*rec), nil
}

func (i impl) List() (list []dictapimodels.DepartmentView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения списка подразделений")
	}
	list = make([]dictapimodels.DepartmentView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.DepartmentConvert(rec))
	}
	return list, nil
}

// Delete удаляет подразделение вместе с должностями, у сотрудников ссылки очищаются
func (i impl) Delete(id string) error {
	logger := log.WithField("rec_id", id)
	if _, err := i.getRec(id); err != nil {
		return err
	}
	err := i.db.Transaction(func(tx *gorm.DB) error {
		designationStore := designationstore.NewInstance(tx)
		employeeStore := employeestore.NewInstance(tx)
		designations, err := designationStore.List(id)
		if err != nil {
			return apperror.FromStorage(err, "ошибка получения должностей подразделения")
		}
		designationIDs := make([]string, 0, len(designations))
		for _, designation := range designations {
			designationIDs = append(designationIDs, designation.ID)
		}
		if err = employeeStore.ClearDesignation(designationIDs); err != nil {
			return err
		}
		if err = employeeStore.ClearDepartment(id); err != nil {
			return err
		}
		if err = designationStore.DeleteByDepartment(id); err != nil {
			return err
		}
		return departmentstore.NewInstance(tx).Delete(id)
	})
	if err != nil {
		return err
	}
	logger.Info("удалено подразделение")
	return nil
}

func (i impl) getRec(id string) (*dbmodels.Department, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения подразделения")
	}
	if rec == nil {
		return nil, apperror.New(apperror.NotFound, "подразделение не найдено")
	}
	return rec, nil
}
