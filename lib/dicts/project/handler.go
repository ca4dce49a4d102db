package projectprovider

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"timesheet-backend/db"
	employeeprojectstore "timesheet-backend/lib/assignment/employee-project-store"
	managerprojectstore "timesheet-backend/lib/assignment/manager-project-store"
	dailylogchangestore "timesheet-backend/lib/daily-log/change-store"
	dailylogstore "timesheet-backend/lib/daily-log/store"
	projectstore "timesheet-backend/lib/dicts/project/store"
	apperror "timesheet-backend/lib/utils/app-error"
	initchecker "timesheet-backend/lib/utils/init-checker"
	dictapimodels "timesheet-backend/models/api/dict"
	dbmodels "timesheet-backend/models/db"
)

type Provider interface {
	Create(request dictapimodels.ProjectData) (id string, err error)
	Update(id string, request dictapimodels.ProjectData) error
	Get(id string) (item dictapimodels.ProjectView, err error)
	List() (list []dictapimodels.ProjectView, err error)
	Delete(id string) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		db:    db.DB,
		store: projectstore.NewInstance(db.DB),
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
		store: projectstore.NewInstance(tx),
	}
}

type impl struct {
	db    *gorm.DB
	store projectstore.Provider
}

func (i impl) Create(request dictapimodels.ProjectData) (id string, err error) {
	rec := dbmodels.Project{
		Name:        request.Name,
		Description: request.Description,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	log.
		WithField("project_name", rec.Name).
		WithField("rec_id", id).
		Info("создан проект")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.ProjectData) error {
	if _, err := i.getRec(id); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"name":        request.Name,
		"description": request.Description,
	}
	err := i.store.Update(id, updMap)
	if err != nil {
		return err
	}
	log.WithField("rec_id", id).Info("обновлен проект")
	return nil
}

func (i impl) Get(id string) (item dictapimodels.ProjectView, err error) {
	rec, err := i.getRec(id)
	if err != nil {
		return dictapimodels.ProjectView{}, err
	}
	return dictapimodels.ProjectConvert(*rec), nil
}

func (i impl) List() (list []dictapimodels.ProjectView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения списка проектов")
	}
	list = make([]dictapimodels.ProjectView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.ProjectConvert(rec))
	}
	return list, nil
}

// Delete удаляет проект; записи о работе и их история остаются без проекта, назначения удаляются
func (i impl) Delete(id string) error {
	if _, err := i.getRec(id); err != nil {
		return err
	}
	err := i.db.Transaction(func(tx *gorm.DB) error {
		if err := dailylogstore.NewInstance(tx).ClearProject(id); err != nil {
			return apperror.FromStorage(err, "ошибка обновления записей о работе")
		}
		if err := dailylogchangestore.NewInstance(tx).ClearProject(id); err != nil {
			return apperror.FromStorage(err, "ошибка обновления истории изменений")
		}
		if err := managerprojectstore.NewInstance(tx).DeleteByProject(id); err != nil {
			return apperror.FromStorage(err, "ошибка удаления назначений руководителей")
		}
		if err := employeeprojectstore.NewInstance(tx).DeleteByProject(id); err != nil {
			return apperror.FromStorage(err, "ошибка удаления участников проекта")
		}
		return projectstore.NewInstance(tx).Delete(id)
	})
	if err != nil {
		return err
	}
	log.WithField("rec_id", id).Info("удален проект")
	return nil
}

func (i impl) getRec(id string) (*dbmodels.Project, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения проекта")
	}
	if rec == nil {
		return nil, apperror.New(apperror.ProjectNotFound, "проект не найден")
	}
	return rec, nil
}
