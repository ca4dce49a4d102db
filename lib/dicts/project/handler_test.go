package projectprovider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"timesheet-backend/db/testdb"
	assignmenthandler "timesheet-backend/lib/assignment"
	dailyloghandler "timesheet-backend/lib/daily-log"
	employeestore "timesheet-backend/lib/dicts/employee/store"
	apperror "timesheet-backend/lib/utils/app-error"
	assignmentapimodels "timesheet-backend/models/api/assignment"
	dailylogapimodels "timesheet-backend/models/api/dailylog"
	dictapimodels "timesheet-backend/models/api/dict"
	dbmodels "timesheet-backend/models/db"
)

func TestProject(t *testing.T) {
	t.Run(`names are unique and listed alphabetically`, func(t *testing.T) {
		tx := testdb.New(t)
		handler := NewHandlerWithTx(tx)

		_, err := handler.Create(dictapimodels.ProjectData{Name: "Zeta"})
		require.NoError(t, err)
		alphaID, err := handler.Create(dictapimodels.ProjectData{Name: "Alpha", Description: "first"})
		require.NoError(t, err)
		_, err = handler.Create(dictapimodels.ProjectData{Name: "Alpha"})
		require.True(t, apperror.Is(err, apperror.ConstraintViolation), err)

		list, err := handler.List()
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "Alpha", list[0].Name)
		require.Equal(t, "first", list[0].Description)

		err = handler.Update(alphaID, dictapimodels.ProjectData{Name: "Zeta"})
		require.True(t, apperror.Is(err, apperror.ConstraintViolation), err)

		_, err = handler.Get("missing")
		require.True(t, apperror.Is(err, apperror.ProjectNotFound))
	})

	t.Run(`delete keeps logs without project and drops assignments`, func(t *testing.T) {
		tx := testdb.New(t)
		ctx := context.Background()
		handler := NewHandlerWithTx(tx)
		projectID, err := handler.Create(dictapimodels.ProjectData{Name: "Legacy"})
		require.NoError(t, err)

		employees := employeestore.NewInstance(tx)
		managerID, err := employees.Create(dbmodels.Employee{EmployeeName: "Manager", Email: "manager@example.com"})
		require.NoError(t, err)
		employeeID, err := employees.Create(dbmodels.Employee{EmployeeName: "Employee", Email: "employee@example.com", ReportsToID: &managerID})
		require.NoError(t, err)

		assignment := assignmenthandler.NewHandlerWithTx(tx)
		_, err = assignment.AttachManager(ctx, assignmentapimodels.AttachManagerRequest{ManagerID: managerID, ProjectID: projectID})
		require.NoError(t, err)
		_, err = assignment.AddMember(ctx, assignmentapimodels.MemberRequest{EmployeeID: employeeID, ProjectID: projectID})
		require.NoError(t, err)

		dailyLog := dailyloghandler.NewHandlerWithTx(tx, dailyloghandler.Options{})
		ids, err := dailyLog.Save(ctx, []dailylogapimodels.DailyLogData{{
			EmployeeID:      employeeID,
			LogDate:         "2025-01-10",
			ProjectID:       projectID,
			StartTime:       "09:00",
			EndTime:         "10:00",
			TaskDescription: "X",
		}})
		require.NoError(t, err)

		require.NoError(t, handler.Delete(projectID))

		rec, err := dailyLog.Get(ids[0])
		require.NoError(t, err)
		require.Nil(t, rec.ProjectID)
		require.Len(t, rec.Changes, 1)
		require.Nil(t, rec.Changes[0].ProjectID)

		projects, err := assignment.ProjectsForUser(employeeID)
		require.NoError(t, err)
		require.Empty(t, projects)
		projects, err = assignment.ProjectsForUser(managerID)
		require.NoError(t, err)
		require.Empty(t, projects)

		require.True(t, apperror.Is(handler.Delete(projectID), apperror.ProjectNotFound))
	})
}
