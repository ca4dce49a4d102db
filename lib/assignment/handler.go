package assignmenthandler

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"timesheet-backend/db"
	employeeprojectstore "timesheet-backend/lib/assignment/employee-project-store"
	managerprojectstore "timesheet-backend/lib/assignment/manager-project-store"
	employeestore "timesheet-backend/lib/dicts/employee/store"
	projectstore "timesheet-backend/lib/dicts/project/store"
	apperror "timesheet-backend/lib/utils/app-error"
	initchecker "timesheet-backend/lib/utils/init-checker"
	"timesheet-backend/lib/utils/lock"
	assignmentapimodels "timesheet-backend/models/api/assignment"
	dictapimodels "timesheet-backend/models/api/dict"
	dbmodels "timesheet-backend/models/db"
)

type Provider interface {
	ResolveReviewer(employeeID string) (reviewerID *string, err error)
	Assign(ctx context.Context, request assignmentapimodels.AssignRequest) (assignmentapimodels.AssignmentView, error)
	Unassign(ctx context.Context, request assignmentapimodels.AssignRequest) error
	AttachManager(ctx context.Context, request assignmentapimodels.AttachManagerRequest) (assignmentapimodels.AssignmentView, error)
	AddMember(ctx context.Context, request assignmentapimodels.MemberRequest) (id string, err error)
	RemoveMember(request assignmentapimodels.MemberRequest) error
	ListByManager(managerID string) ([]assignmentapimodels.AssignmentView, error)
	ProjectsForUser(userID string) ([]dictapimodels.ProjectView, error)
	Roster() ([]assignmentapimodels.RosterItem, error)
}

var Instance Provider

const lockWait = 5 * time.Second

func NewHandler() {
	instance := newImpl(db.DB)
	initchecker.CheckInit(
		"db", instance.db,
		"employeeStore", instance.employeeStore,
		"projectStore", instance.projectStore,
		"managerProjectStore", instance.managerProjectStore,
		"employeeProjectStore", instance.employeeProjectStore,
	)
	Instance = instance
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return newImpl(tx)
}

func newImpl(tx *gorm.DB) impl {
	return impl{
		db:                   tx,
		employeeStore:        employeestore.NewInstance(tx),
		projectStore:         projectstore.NewInstance(tx),
		managerProjectStore:  managerprojectstore.NewInstance(tx),
		employeeProjectStore: employeeprojectstore.NewInstance(tx),
	}
}

type impl struct {
	db                   *gorm.DB
	employeeStore        employeestore.Provider
	projectStore         projectstore.Provider
	managerProjectStore  managerprojectstore.Provider
	employeeProjectStore employeeprojectstore.Provider
}

// ResolveReviewer - проверяющий всегда непосредственный руководитель сотрудника
func (i impl) ResolveReviewer(employeeID string) (reviewerID *string, err error) {
	employee, err := i.getEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	if employee.ReportsToID == nil || *employee.ReportsToID == "" {
		return nil, nil
	}
	reviewer := *employee.ReportsToID
	return &reviewer, nil
}

func (i impl) Assign(ctx context.Context, request assignmentapimodels.AssignRequest) (assignmentapimodels.AssignmentView, error) {
	logger := log.
		WithField("manager_id", request.ManagerID).
		WithField("project_id", request.ProjectID).
		WithField("employee_id", request.EmployeeID)
	if err := request.Validate(); err != nil {
		return assignmentapimodels.AssignmentView{}, err
	}
	if _, err := i.getProject(request.ProjectID); err != nil {
		return assignmentapimodels.AssignmentView{}, err
	}
	if _, err := i.getEmployee(request.ManagerID); err != nil {
		return assignmentapimodels.AssignmentView{}, err
	}
	if _, err := i.getEmployee(request.EmployeeID); err != nil {
		return assignmentapimodels.AssignmentView{}, err
	}
	linked, err := i.isManagerLinked(request.ManagerID, request.ProjectID)
	if err != nil {
		return assignmentapimodels.AssignmentView{}, err
	}
	if !linked {
		return assignmentapimodels.AssignmentView{}, apperror.New(apperror.ManagerNotAuthorized,
			"руководитель не закреплен за проектом, сначала добавьте его в проект")
	}

	var id string
	key := fmt.Sprintf("assignment:%s:%s", request.ManagerID, request.ProjectID)
	ok, err := lock.WithDelay(ctx, key, lockWait, func() error {
		employeeID := request.EmployeeID
		existing, err := i.managerProjectStore.Find(request.ManagerID, request.ProjectID, &employeeID)
		if err != nil {
			return apperror.FromStorage(err, "ошибка проверки назначения")
		}
		if existing != nil {
			return apperror.New(apperror.DuplicateAssignment, "сотрудник уже назначен этому руководителю на проекте")
		}
		id, err = i.managerProjectStore.Create(dbmodels.ManagerProjectAssignment{
			ManagerID:  request.ManagerID,
			ProjectID:  request.ProjectID,
			EmployeeID: &employeeID,
		})
		return apperror.FromStorage(err, "ошибка сохранения назначения")
	})
	if err != nil {
		return assignmentapimodels.AssignmentView{}, err
	}
	if !ok {
		return assignmentapimodels.AssignmentView{}, apperror.New(apperror.Busy, "назначение уже изменяется, повторите попытку")
	}
	logger.WithField("rec_id", id).Info("сотрудник назначен руководителю на проекте")
	return i.getView(id)
}

// Unassign удаляет назначение и участие сотрудника в проекте
func (i impl) Unassign(ctx context.Context, request assignmentapimodels.AssignRequest) error {
	logger := log.
		WithField("manager_id", request.ManagerID).
		WithField("project_id", request.ProjectID).
		WithField("employee_id", request.EmployeeID)
	if err := request.Validate(); err != nil {
		return err
	}
	employeeID := request.EmployeeID
	existing, err := i.managerProjectStore.Find(request.ManagerID, request.ProjectID, &employeeID)
	if err != nil {
		return apperror.FromStorage(err, "ошибка получения назначения")
	}
	if existing == nil {
		return apperror.New(apperror.NotFound, "назначение не найдено")
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		if err := managerprojectstore.NewInstance(tx).Delete(existing.ID); err != nil {
			return apperror.FromStorage(err, "ошибка удаления назначения")
		}
		if _, err := employeeprojectstore.NewInstance(tx).Delete(request.EmployeeID, request.ProjectID); err != nil {
			return apperror.FromStorage(err, "ошибка удаления участия в проекте")
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("назначение удалено")
	return nil
}

func (i impl) AttachManager(ctx context.Context, request assignmentapimodels.AttachManagerRequest) (assignmentapimodels.AssignmentView, error) {
	logger := log.
		WithField("manager_id", request.ManagerID).
		WithField("project_id", request.ProjectID)
	if err := request.Validate(); err != nil {
		return assignmentapimodels.AssignmentView{}, err
	}
	if _, err := i.getProject(request.ProjectID); err != nil {
		return assignmentapimodels.AssignmentView{}, err
	}
	if _, err := i.getEmployee(request.ManagerID); err != nil {
		return assignmentapimodels.AssignmentView{}, err
	}

	var id string
	key := fmt.Sprintf("assignment:%s:%s", request.ManagerID, request.ProjectID)
	ok, err := lock.WithDelay(ctx, key, lockWait, func() error {
		existing, err := i.managerProjectStore.Find(request.ManagerID, request.ProjectID, nil)
		if err != nil {
			return apperror.FromStorage(err, "ошибка проверки назначения")
		}
		if existing != nil {
			return apperror.New(apperror.DuplicateAssignment, "руководитель уже закреплен за проектом")
		}
		id, err = i.managerProjectStore.Create(dbmodels.ManagerProjectAssignment{
			ManagerID: request.ManagerID,
			ProjectID: request.ProjectID,
		})
		return apperror.FromStorage(err, "ошибка сохранения назначения")
	})
	if err != nil {
		return assignmentapimodels.AssignmentView{}, err
	}
	if !ok {
		return assignmentapimodels.AssignmentView{}, apperror.New(apperror.Busy, "назначение уже изменяется, повторите попытку")
	}
	logger.WithField("rec_id", id).Info("руководитель закреплен за проектом")
	return i.getView(id)
}

func (i impl) AddMember(ctx context.Context, request assignmentapimodels.MemberRequest) (id string, err error) {
	logger := log.
		WithField("employee_id", request.EmployeeID).
		WithField("project_id", request.ProjectID)
	if err = request.Validate(); err != nil {
		return "", err
	}
	if _, err = i.getProject(request.ProjectID); err != nil {
		return "", err
	}
	if _, err = i.getEmployee(request.EmployeeID); err != nil {
		return "", err
	}
	key := fmt.Sprintf("member:%s:%s", request.EmployeeID, request.ProjectID)
	ok, err := lock.WithDelay(ctx, key, lockWait, func() error {
		existing, err := i.employeeProjectStore.Get(request.EmployeeID, request.ProjectID)
		if err != nil {
			return apperror.FromStorage(err, "ошибка проверки участия в проекте")
		}
		if existing != nil {
			return apperror.New(apperror.DuplicateAssignment, "сотрудник уже участвует в проекте")
		}
		id, err = i.employeeProjectStore.Create(dbmodels.EmployeeProject{
			EmployeeID: request.EmployeeID,
			ProjectID:  request.ProjectID,
		})
		return apperror.FromStorage(err, "ошибка сохранения участия в проекте")
	})
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperror.New(apperror.Busy, "участие в проекте уже изменяется, повторите попытку")
	}
	logger.WithField("rec_id", id).Info("сотрудник добавлен в проект")
	return id, nil
}

func (i impl) RemoveMember(request assignmentapimodels.MemberRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}
	deleted, err := i.employeeProjectStore.Delete(request.EmployeeID, request.ProjectID)
	if err != nil {
		return apperror.FromStorage(err, "ошибка удаления участия в проекте")
	}
	if !deleted {
		return apperror.New(apperror.NotFound, "сотрудник не участвует в проекте")
	}
	log.
		WithField("employee_id", request.EmployeeID).
		WithField("project_id", request.ProjectID).
		Info("сотрудник исключен из проекта")
	return nil
}

func (i impl) ListByManager(managerID string) ([]assignmentapimodels.AssignmentView, error) {
	if _, err := i.getEmployee(managerID); err != nil {
		return nil, err
	}
	list, err := i.managerProjectStore.ListByManager(managerID)
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения назначений руководителя")
	}
	result := make([]assignmentapimodels.AssignmentView, 0, len(list))
	for _, rec := range list {
		result = append(result, assignmentapimodels.AssignmentConvert(rec))
	}
	return result, nil
}

// ProjectsForUser - проекты, где пользователь руководитель, подчиненный или участник
func (i impl) ProjectsForUser(userID string) ([]dictapimodels.ProjectView, error) {
	assignedIDs, err := i.managerProjectStore.ProjectIDsForUser(userID)
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения проектов пользователя")
	}
	memberIDs, err := i.employeeProjectStore.ProjectIDsByEmployee(userID)
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения проектов пользователя")
	}
	projectIDs := uniqueIDs(append(assignedIDs, memberIDs...))
	projects, err := i.projectStore.ListByIDs(projectIDs)
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения проектов пользователя")
	}
	result := make([]dictapimodels.ProjectView, 0, len(projects))
	for _, rec := range projects {
		result = append(result, dictapimodels.ProjectConvert(rec))
	}
	return result, nil
}

// Roster - проекты с участниками (руководителями) и сотрудниками, назначенными под ними
func (i impl) Roster() ([]assignmentapimodels.RosterItem, error) {
	projects, err := i.projectStore.List()
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения проектов")
	}
	members, err := i.employeeProjectStore.List()
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения участников проектов")
	}
	supervised, err := i.managerProjectStore.ListSupervised()
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения назначений")
	}

	managersByProject := map[string][]assignmentapimodels.PersonShort{}
	isManager := map[string]map[string]bool{} // [projectID][employeeID]
	for _, member := range members {
		if isManager[member.ProjectID] == nil {
			isManager[member.ProjectID] = map[string]bool{}
		}
		isManager[member.ProjectID][member.EmployeeID] = true
		managersByProject[member.ProjectID] = append(managersByProject[member.ProjectID], personOf(member.Employee, member.EmployeeID))
	}
	teamByProject := map[string][]assignmentapimodels.PersonShort{}
	seen := map[string]bool{}
	for _, rec := range supervised {
		if !isManager[rec.ProjectID][rec.ManagerID] || rec.EmployeeID == nil {
			continue
		}
		seenKey := rec.ProjectID + ":" + *rec.EmployeeID
		if seen[seenKey] {
			continue
		}
		seen[seenKey] = true
		teamByProject[rec.ProjectID] = append(teamByProject[rec.ProjectID], personOf(rec.Employee, *rec.EmployeeID))
	}

	result := make([]assignmentapimodels.RosterItem, 0, len(projects))
	for _, project := range projects {
		item := assignmentapimodels.RosterItem{
			ProjectID:   project.ID,
			ProjectName: project.Name,
			Description: project.Description,
			Managers:    managersByProject[project.ID],
			TeamMembers: teamByProject[project.ID],
		}
		if item.Managers == nil {
			item.Managers = []assignmentapimodels.PersonShort{}
		}
		if item.TeamMembers == nil {
			item.TeamMembers = []assignmentapimodels.PersonShort{}
		}
		result = append(result, item)
	}
	return result, nil
}

func (i impl) isManagerLinked(managerID, projectID string) (bool, error) {
	managerOnly, err := i.managerProjectStore.Find(managerID, projectID, nil)
	if err != nil {
		return false, apperror.FromStorage(err, "ошибка проверки руководителя проекта")
	}
	if managerOnly != nil {
		return true, nil
	}
	member, err := i.employeeProjectStore.Get(managerID, projectID)
	if err != nil {
		return false, apperror.FromStorage(err, "ошибка проверки руководителя проекта")
	}
	return member != nil, nil
}

func (i impl) getEmployee(id string) (*dbmodels.Employee, error) {
	rec, err := i.employeeStore.GetByID(id)
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения сотрудника")
	}
	if rec == nil {
		return nil, apperror.Newf(apperror.EmployeeNotFound, "сотрудник %s не найден", id)
	}
	return rec, nil
}

func (i impl) getProject(id string) (*dbmodels.Project, error) {
	rec, err := i.projectStore.GetByID(id)
	if err != nil {
		return nil, apperror.FromStorage(err, "ошибка получения проекта")
	}
	if rec == nil {
		return nil, apperror.Newf(apperror.ProjectNotFound, "проект %s не найден", id)
	}
	return rec, nil
}

func (i impl) getView(id string) (assignmentapimodels.AssignmentView, error) {
	rec, err := i.managerProjectStore.GetByID(id)
	if err != nil {
		return assignmentapimodels.AssignmentView{}, apperror.FromStorage(err, "ошибка получения назначения")
	}
	if rec == nil {
		return assignmentapimodels.AssignmentView{}, apperror.New(apperror.NotFound, "назначение не найдено")
	}
	return assignmentapimodels.AssignmentConvert(*rec), nil
}

func personOf(rec *dbmodels.Employee, id string) assignmentapimodels.PersonShort {
	person := assignmentapimodels.PersonShort{ID: id}
	if rec != nil {
		person.Name = rec.EmployeeName
	}
	return person
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
