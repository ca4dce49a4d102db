package employeeprovider

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"timesheet-backend/db"
	assignmenthandler "timesheet-backend/lib/assignment"
	employeeprojectstore "timesheet-backend/lib/assignment/employee-project-store"
	managerprojectstore "timesheet-backend/lib/assignment/manager-project-store"
	dailylogchangestore "timesheet-backend/lib/daily-log/change-store"
	dailylogstore "timesheet-backend/lib/daily-log/store"
	departmentstore "timesheet-backend/lib/dicts/department/store"
	designationstore "timesheet-backend/lib/dicts/designation/store"
	employeestore "timesheet-backend/lib/dicts/employee/store"
	projectstore "timesheet-backend/lib/dicts/project/store"
	apperror "timesheet-backend/lib/utils/app-error"
	initchecker "timesheet-backend/lib/utils/init-checker"
	dictapimodels "timesheet-backend/models/api/dict"
	dbmodels "timesheet-backend/models/db"
)

type Provider interface {
	Create(request dictapimodels.EmployeeData) (id string, err error)
	Update(id string, request dictapimodels.EmployeeData) error
	UpdateReportsTo(id string, reportsToID *string) error
	Get(id string) (item dictapimodels.EmployeeView, err error)
	GetByEmail(email string) (item dictapimodels.EmployeeView, err error)
	List(filter dictapimodels.EmployeeFilter) (list []dictapimodels.EmployeeView, rowCount int64, err error)
	Delete(id string) error
	ManagerChain(id string) ([]dictapimodels.ManagerView, error)
	Info(email string) (dictapimodels.EmployeeInfo, error)
	Dashboard(filter dictapimodels.EmployeeFilter) (dictapimodels.DashboardView, error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		db:               db.DB,
		store:            employeestore.NewInstance(db.DB),
		departmentStore:  departmentstore.NewInstance(db.DB),
		designationStore: designationstore.NewInstance(db.DB),
		projectStore:     projectstore.NewInstance(db.DB),
		assignment:       assignmenthandler.Instance,
	}
	initchecker.CheckInit(
		"db", instance.db,
		"store", instance.store,
		"departmentStore", instance.departmentStore,
		"designationStore", instance.designationStore,
		"projectStore", instance.projectStore,
		"assignment", instance.assignment,
	)
	Instance = instance
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		db:               tx,
		store:            employeestore.NewInstance(tx),
		departmentStore:  departmentstore.NewInstance(tx),
		designationStore: designationstore.NewInstance(tx),
		projectStore:     projectstore.NewInstance(tx),
		assignment:       assignmenthandler.NewHandlerWithTx(tx),
	}
}

type impl struct {
	db               *gorm.DB
	store            employeestore.Provider
	departmentStore  departmentstore.Provider
	designationStore designationstore.Provider
	projectStore     projectstore.Provider
	assignment       assignmenthandler.Provider
}

func (i impl) Create(request dictapimodels.EmployeeData) (id string, err error) {
	if err = request.Validate(); err != nil {
		return "", apperror.Wrap(apperror.InvalidData, err.Error(), err)
	}
	if err = i.checkRefs(request); err != nil {
		return "", err
	}
	rec := dbmodels.Employee{
		EmployeeName:  request.EmployeeName,
		Email:         request.Email,
		DepartmentID:  emptyToNil(request.DepartmentID),
		DesignationID: emptyToNil(request.DesignationID),
		ReportsToID:   emptyToNil(request.ReportsToID),
	}
	if rec.ReportsToID != nil {
		if _, err = i.getRec(*rec.ReportsToID); err != nil {
			return "", err
		}
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	log.
		WithField("employee_name", rec.EmployeeName).
		WithField("rec_id", id).
		Info("создан сотрудник")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.EmployeeData) error {
	if err := request.Validate(); err != nil {
		return apperror.Wrap(apperror.InvalidData, err.Error(), err)
	}
	if _, err := i.getRec(id); err != nil {
		return err
	}
	if err := i.checkRefs(request); err != nil {
		return err
	}
	reportsToID := emptyToNil(request.ReportsToID)
	if err := i.checkHierarchy(id, reportsToID); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"employee_name":  request.EmployeeName,
		"email":          request.Email,
		"department_id":  emptyToNil(request.DepartmentID),
		"designation_id": emptyToNil(request.DesignationID),
		"reports_to_id":  reportsToID,
	}
	if err := i.store.Update(id, updMap); err != nil {
		return err
	}
	log.WithField("rec_id", id).Info("обновлен сотрудник")
	return nil
}

func (i impl) UpdateReportsTo(id string, reportsToID *string) error {
	if _, err := i.getRec(id); err != nil {
		return err
	}
	reportsToID = emptyToNil(reportsToID)
	if err := i.checkHierarchy(id, reportsToID); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"reports_to_id": reportsToID,
	}
	if err := i.store.Update(id, updMap); err != nil {
		return err
	}
	log.
		WithField("rec_id", id).
		WithField("reports_to_id", reportsToID).
		Info("изменен руководитель сотрудника")
	return nil
}

func (i impl) Get(id string) (item dictapimodels.EmployeeView, err error) {
	rec, err := i.getRec(id)
	if err != nil {
		return dictapimodels.EmployeeView{}, err
	}
	return dictapimodels.EmployeeConvert(*rec), nil
}

func (i impl) GetByEmail(email string) (item dictapimodels.EmployeeView, err error) {
	rec, err := i.getByEmail(email)
	if err != nil {
		return dictapimodels.EmployeeView{}, err
	}
	return dictapimodels.EmployeeConvert(*rec), nil
}

func (i impl) List(filter dictapimodels.EmployeeFilter) (list []dictapimodels.EmployeeView, rowCount int64, err error) {
	recList, rowCount, err := i.store.List(filter)
	if err != nil {
		return nil, 0, apperror.FromStorage(err, "ошибка получения списка сотрудников")
	}
	list = make([]dictapimodels.EmployeeView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.EmployeeConvert(rec))
	}
	return list, rowCount, nil
}

// Delete удаляет сотрудника с его записями о работе и назначениями.
// У подчиненных и у проверяемых записей ссылка на сотрудника очищается
func (i impl) Delete(id string) error {
	if _, err := i.getRec(id); err != nil {
		return err
	}
	err := i.db.Transaction(func(tx *gorm.DB) error {
		changeStore := dailylogchangestore.NewInstance(tx)
		logStore := dailylogstore.NewInstance(tx)
		if err := changeStore.DeleteByEmployee(id); err != nil {
			return apperror.FromStorage(err, "ошибка удаления истории изменений")
		}
		if err := logStore.DeleteByEmployee(id); err != nil {
			return apperror.FromStorage(err, "ошибка удаления записей о работе")
		}
		if err := changeStore.ClearReviewer(id); err != nil {
			return apperror.FromStorage(err, "ошибка обновления истории изменений")
		}
		if err := logStore.ClearReviewer(id); err != nil {
			return apperror.FromStorage(err, "ошибка обновления записей о работе")
		}
		if err := managerprojectstore.NewInstance(tx).DeleteByEmployee(id); err != nil {
			return apperror.FromStorage(err, "ошибка удаления назначений")
		}
		if err := employeeprojectstore.NewInstance(tx).DeleteByEmployee(id); err != nil {
			return apperror.FromStorage(err, "ошибка удаления участия в проектах")
		}
		employeeStore := employeestore.NewInstance(tx)
		if err := employeeStore.ClearReportsTo(id); err != nil {
			return err
		}
		return employeeStore.Delete(id)
	})
	if err != nil {
		return err
	}
	log.WithField("rec_id", id).Info("удален сотрудник")
	return nil
}

// ManagerChain - цепочка руководителей снизу вверх, без повторов
func (i impl) ManagerChain(id string) ([]dictapimodels.ManagerView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return nil, err
	}
	return i.managerChain(rec)
}

func (i impl) Info(email string) (dictapimodels.EmployeeInfo, error) {
	rec, err := i.getByEmail(email)
	if err != nil {
		return dictapimodels.EmployeeInfo{}, err
	}
	result := dictapimodels.EmployeeInfo{
		Employee: dictapimodels.EmployeeConvert(*rec),
	}
	if rec.Department != nil {
		department := dictapimodels.DepartmentConvert(*rec.Department)
		result.Department = &department
	}
	if rec.Designation != nil {
		designation := dictapimodels.DesignationConvert(*rec.Designation)
		result.Designation = &designation
	}
	result.Projects, err = i.assignment.ProjectsForUser(rec.ID)
	if err != nil {
		return dictapimodels.EmployeeInfo{}, err
	}
	result.ManagerHierarchy, err = i.managerChain(rec)
	if err != nil {
		return dictapimodels.EmployeeInfo{}, err
	}
	return result, nil
}

// Dashboard - сотрудники по фильтру с цепочками руководителей и справочники для фильтров
func (i impl) Dashboard(filter dictapimodels.EmployeeFilter) (dictapimodels.DashboardView, error) {
	recList, err := i.store.ListAll(filter)
	if err != nil {
		return dictapimodels.DashboardView{}, apperror.FromStorage(err, "ошибка получения списка сотрудников")
	}
	result := dictapimodels.DashboardView{
		Employees:    make([]dictapimodels.DashboardEmployeeView, 0, len(recList)),
		Departments:  []dictapimodels.DepartmentView{},
		Designations: []dictapimodels.DesignationView{},
		Projects:     []dictapimodels.ProjectView{},
	}
	for idx := range recList {
		hierarchy, err := i.managerChain(&recList[idx])
		if err != nil {
			return dictapimodels.DashboardView{}, err
		}
		result.Employees = append(result.Employees, dictapimodels.DashboardEmployeeView{
			EmployeeView:     dictapimodels.EmployeeConvert(recList[idx]),
			ManagerHierarchy: hierarchy,
		})
	}

	departments, err := i.departmentStore.List()
	if err != nil {
		return dictapimodels.DashboardView{}, apperror.FromStorage(err, "ошибка получения подразделений")
	}
	for _, rec := range departments {
		result.Departments = append(result.Departments, dictapimodels.DepartmentConvert(rec))
	}
	designations, err := i.designationStore.List("")
	if err != nil {
		return dictapimodels.DashboardView{}, apperror.FromStorage(err, "ошибка получения должностей")
	}
	for _, rec := range designations {
		result.Designations = append(result.Designations, dictapimodels.DesignationConvert(rec))
	}
	projects, err := i.projectStore.List()
	if err != nil {
		return dictapimodels.DashboardView{}, apperror.FromStorage(err, "ошибка получения проектов")
	}
	for _, rec := range projects {
		result.Projects = append(result.Projects, dictapimodels.ProjectConvert(rec))
	}
	return result, nil
}

func (i impl) managerChain(rec *dbmodels.Employee) ([]dictapimodels.ManagerView, error) {
	result := []dictapimodels.ManagerView{}
	visited := map[string]bool{rec.ID: true}
	nextID := rec.ReportsToID
	for nextID != nil && *nextID != "" && !visited[*nextID] {
		visited[*nextID] = true
		manager, err := i.store.GetByID(*nextID)
		if err != nil {
			return nil, apperror.FromStorage(err, "ошибка получения руководителя")
		}
		if manager == nil {
			break
		}
		result = append(result, dictapimodels.ManagerConvert(*manager))
		nextID = manager.ReportsToID
	}
	return result, nil
}

// checkHierarchy не дает сотруднику оказаться (в т.ч. косвенно) своим же руководителем
func (i impl) checkHierarchy(id string, reportsToID *string) error {
	if reportsToID == nil {
		return nil
	}
	if *reportsToID == id {
		return apperror.New(apperror.HierarchyCycle, "сотрудник не может подчиняться самому себе")
	}
	visited := map[string]bool{}
	nextID := reportsToID
	for nextID != nil && *nextID != "" {
		if *nextID == id {
			return apperror.New(apperror.HierarchyCycle, "изменение создает цикл в структуре подчинения")
		}
		if visited[*nextID] {
			return nil
		}
		visited[*nextID] = true
		manager, err := i.store.GetByID(*nextID)
		if err != nil {
			return apperror.FromStorage(err, "ошибка получения руководителя")
		}
		if manager == nil {
			if nextID == reportsToID {
				return apperror.Newf(apperror.EmployeeNotFound, "руководитель %s не найден", *reportsToID)
			}
			return nil
		}
		nextID = manager.ReportsToID
	}
	return nil
}

func (i impl) checkRefs(request dictapimodels.EmployeeData) error {
	if departmentID := emptyToNil(request.DepartmentID); departmentID != nil {
		rec, err := i.departmentStore.GetByID(*departmentID)
		if err != nil {
			return apperror.FromStorage(err, "ошибка получения подразделения")
		}
		if rec == nil {
			return apperror.New(apperror.NotFound, "подразделение не найдено")
		}
	}
	if designationID := emptyToNil(request.DesignationID); designationID != nil {
		rec, err := i.designationStore.GetByID(*designationID)
		if err != nil {
			return apperror.FromStorage(err, "ошибка получения должности")
		}
		if rec == nil {
			return apperror.New(apperror.NotFound, "должность не найдена")
		}
	}
	return nil
}

func (i impl) getRec(id string) (*dbmodels.Employee, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения сотрудника")
	}
	if rec == nil {
		return nil, apperror.Newf(apperror.EmployeeNotFound, "сотрудник %s не найден", id)
	}
	return rec, nil
}

func (i impl) getByEmail(email string) (*dbmodels.Employee, error) {
	if email == "" {
		return nil, apperror.New(apperror.MissingField, "не указан email")
	}
	rec, err := i.store.GetByEmail(email)
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения сотрудника")
	}
	if rec == nil {
		return nil, apperror.Newf(apperror.EmployeeNotFound, "сотрудник с email %s не найден", email)
	}
	return rec, nil
}

func emptyToNil(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}
