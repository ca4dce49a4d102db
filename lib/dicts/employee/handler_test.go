package employeeprovider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"timesheet-backend/db/testdb"
	assignmenthandler "timesheet-backend/lib/assignment"
	dailyloghandler "timesheet-backend/lib/daily-log"
	departmentstore "timesheet-backend/lib/dicts/department/store"
	designationstore "timesheet-backend/lib/dicts/designation/store"
	projectstore "timesheet-backend/lib/dicts/project/store"
	apperror "timesheet-backend/lib/utils/app-error"
	assignmentapimodels "timesheet-backend/models/api/assignment"
	dailylogapimodels "timesheet-backend/models/api/dailylog"
	dictapimodels "timesheet-backend/models/api/dict"
	dbmodels "timesheet-backend/models/db"
)

// newChain создает цепочку ceo <- head <- dev
func newChain(t *testing.T, tx *gorm.DB) (ceoID, headID, devID string) {
	handler := NewHandlerWithTx(tx)
	var err error
	ceoID, err = handler.Create(dictapimodels.EmployeeData{EmployeeName: "CEO", Email: "ceo@example.com"})
	require.NoError(t, err)
	headID, err = handler.Create(dictapimodels.EmployeeData{EmployeeName: "Head", Email: "head@example.com", ReportsToID: &ceoID})
	require.NoError(t, err)
	devID, err = handler.Create(dictapimodels.EmployeeData{EmployeeName: "Dev", Email: "dev@example.com", ReportsToID: &headID})
	require.NoError(t, err)
	return ceoID, headID, devID
}

func TestEmployee(t *testing.T) {
	t.Run(`validation and references`, func(t *testing.T) {
		tx := testdb.New(t)
		handler := NewHandlerWithTx(tx)

		_, err := handler.Create(dictapimodels.EmployeeData{EmployeeName: "NoMail"})
		require.True(t, apperror.Is(err, apperror.InvalidData), err)
		_, err = handler.Create(dictapimodels.EmployeeData{EmployeeName: "BadMail", Email: "not-an-email"})
		require.True(t, apperror.Is(err, apperror.InvalidData), err)

		missing := "missing"
		_, err = handler.Create(dictapimodels.EmployeeData{EmployeeName: "A", Email: "a@example.com", ReportsToID: &missing})
		require.True(t, apperror.Is(err, apperror.EmployeeNotFound), err)
		_, err = handler.Create(dictapimodels.EmployeeData{EmployeeName: "A", Email: "a@example.com", DepartmentID: &missing})
		require.True(t, apperror.Is(err, apperror.NotFound), err)

		empty := ""
		id, err := handler.Create(dictapimodels.EmployeeData{EmployeeName: "A", Email: "a@example.com", DepartmentID: &empty})
		require.NoError(t, err)
		item, err := handler.Get(id)
		require.NoError(t, err)
		require.Nil(t, item.DepartmentID)
	})

	t.Run(`hierarchy cycles are rejected`, func(t *testing.T) {
		tx := testdb.New(t)
		handler := NewHandlerWithTx(tx)
		ceoID, headID, devID := newChain(t, tx)

		err := handler.UpdateReportsTo(ceoID, &devID)
		require.True(t, apperror.Is(err, apperror.HierarchyCycle), err)
		err = handler.UpdateReportsTo(headID, &headID)
		require.True(t, apperror.Is(err, apperror.HierarchyCycle), err)
		err = handler.Update(ceoID, dictapimodels.EmployeeData{EmployeeName: "CEO", Email: "ceo@example.com", ReportsToID: &headID})
		require.True(t, apperror.Is(err, apperror.HierarchyCycle), err)

		require.NoError(t, handler.UpdateReportsTo(devID, &ceoID))
		require.NoError(t, handler.UpdateReportsTo(devID, nil))
		item, err := handler.Get(devID)
		require.NoError(t, err)
		require.Nil(t, item.ReportsToID)
	})

	t.Run(`manager chain goes bottom up`, func(t *testing.T) {
		tx := testdb.New(t)
		handler := NewHandlerWithTx(tx)
		ceoID, headID, devID := newChain(t, tx)

		chain, err := handler.ManagerChain(devID)
		require.NoError(t, err)
		require.Len(t, chain, 2)
		require.Equal(t, headID, chain[0].ID)
		require.Equal(t, ceoID, chain[1].ID)

		chain, err = handler.ManagerChain(ceoID)
		require.NoError(t, err)
		require.Empty(t, chain)
	})

	t.Run(`info by email`, func(t *testing.T) {
		tx := testdb.New(t)
		handler := NewHandlerWithTx(tx)
		departmentID, err := departmentstore.NewInstance(tx).Create(dbmodels.Department{Name: "Engineering"})
		require.NoError(t, err)
		designationID, err := designationstore.NewInstance(tx).Create(dbmodels.Designation{Title: "Developer", DepartmentID: departmentID})
		require.NoError(t, err)
		ceoID, headID, devID := newChain(t, tx)
		require.NoError(t, handler.Update(devID, dictapimodels.EmployeeData{
			EmployeeName:  "Dev",
			Email:         "dev@example.com",
			DepartmentID:  &departmentID,
			DesignationID: &designationID,
			ReportsToID:   &headID,
		}))
		projectID, err := projectstore.NewInstance(tx).Create(dbmodels.Project{Name: "Core"})
		require.NoError(t, err)
		_, err = assignmenthandler.NewHandlerWithTx(tx).AddMember(context.Background(),
			assignmentapimodels.MemberRequest{EmployeeID: devID, ProjectID: projectID})
		require.NoError(t, err)

		info, err := handler.Info(" DEV@example.com ")
		require.NoError(t, err)
		require.Equal(t, devID, info.Employee.ID)
		require.Equal(t, "Head", info.Employee.ReportsTo)
		require.NotNil(t, info.Department)
		require.Equal(t, "Engineering", info.Department.Name)
		require.NotNil(t, info.Designation)
		require.Equal(t, "Developer", info.Designation.Title)
		require.Len(t, info.Projects, 1)
		require.Equal(t, "Core", info.Projects[0].Name)
		require.Len(t, info.ManagerHierarchy, 2)
		require.Equal(t, ceoID, info.ManagerHierarchy[1].ID)

		_, err = handler.Info("nobody@example.com")
		require.True(t, apperror.Is(err, apperror.EmployeeNotFound), err)
	})

	t.Run(`list with filter and pagination`, func(t *testing.T) {
		tx := testdb.New(t)
		handler := NewHandlerWithTx(tx)
		newChain(t, tx)

		list, rowCount, err := handler.List(dictapimodels.EmployeeFilter{})
		require.NoError(t, err)
		require.Equal(t, int64(3), rowCount)
		require.Len(t, list, 3)

		filter := dictapimodels.EmployeeFilter{Name: "e"}
		filter.Limit = 1
		list, rowCount, err = handler.List(filter)
		require.NoError(t, err)
		require.Equal(t, int64(3), rowCount)
		require.Len(t, list, 1)

		list, rowCount, err = handler.List(dictapimodels.EmployeeFilter{Name: "hea"})
		require.NoError(t, err)
		require.Equal(t, int64(1), rowCount)
		require.Equal(t, "Head", list[0].EmployeeName)
	})

	t.Run(`delete cascades own data and detaches others`, func(t *testing.T) {
		tx := testdb.New(t)
		ctx := context.Background()
		handler := NewHandlerWithTx(tx)
		_, headID, devID := newChain(t, tx)
		projectID, err := projectstore.NewInstance(tx).Create(dbmodels.Project{Name: "Core"})
		require.NoError(t, err)

		dailyLog := dailyloghandler.NewHandlerWithTx(tx, dailyloghandler.Options{})
		devLogs, err := dailyLog.Save(ctx, []dailylogapimodels.DailyLogData{{
			EmployeeID:      devID,
			LogDate:         "2025-01-10",
			ProjectID:       projectID,
			StartTime:       "09:00",
			EndTime:         "10:00",
			TaskDescription: "dev work",
		}})
		require.NoError(t, err)
		headLogs, err := dailyLog.Save(ctx, []dailylogapimodels.DailyLogData{{
			EmployeeID:      headID,
			LogDate:         "2025-01-10",
			ProjectID:       projectID,
			StartTime:       "09:00",
			EndTime:         "10:00",
			TaskDescription: "head work",
		}})
		require.NoError(t, err)

		require.NoError(t, handler.Delete(headID))

		_, err = handler.Get(headID)
		require.True(t, apperror.Is(err, apperror.EmployeeNotFound))
		_, err = dailyLog.Get(headLogs[0])
		require.True(t, apperror.Is(err, apperror.LogNotFound))

		rec, err := dailyLog.Get(devLogs[0])
		require.NoError(t, err)
		require.Nil(t, rec.ReviewerID)
		require.Nil(t, rec.Changes[0].ReviewerID)

		dev, err := handler.Get(devID)
		require.NoError(t, err)
		require.Nil(t, dev.ReportsToID)

		var changes int64
		require.NoError(t, tx.Model(&dbmodels.DailyLogChange{}).Count(&changes).Error)
		require.Equal(t, int64(1), changes)
	})

	t.Run(`dashboard filters and lookups`, func(t *testing.T) {
		tx := testdb.New(t)
		ctx := context.Background()
		handler := NewHandlerWithTx(tx)
		departmentID, err := departmentstore.NewInstance(tx).Create(dbmodels.Department{Name: "Engineering"})
		require.NoError(t, err)
		_, err = departmentstore.NewInstance(tx).Create(dbmodels.Department{Name: "Sales"})
		require.NoError(t, err)
		designationID, err := designationstore.NewInstance(tx).Create(dbmodels.Designation{Title: "Developer", DepartmentID: departmentID})
		require.NoError(t, err)
		ceoID, headID, devID := newChain(t, tx)
		require.NoError(t, handler.Update(devID, dictapimodels.EmployeeData{
			EmployeeName:  "Dev",
			Email:         "dev@example.com",
			DepartmentID:  &departmentID,
			DesignationID: &designationID,
			ReportsToID:   &headID,
		}))
		projectID, err := projectstore.NewInstance(tx).Create(dbmodels.Project{Name: "Core"})
		require.NoError(t, err)
		_, err = projectstore.NewInstance(tx).Create(dbmodels.Project{Name: "Admin"})
		require.NoError(t, err)
		_, err = dailyloghandler.NewHandlerWithTx(tx, dailyloghandler.Options{}).Save(ctx, []dailylogapimodels.DailyLogData{{
			EmployeeID:      headID,
			LogDate:         "2025-01-10",
			ProjectID:       projectID,
			StartTime:       "09:00",
			EndTime:         "10:00",
			TaskDescription: "review",
		}})
		require.NoError(t, err)

		dashboard, err := handler.Dashboard(dictapimodels.EmployeeFilter{})
		require.NoError(t, err)
		require.Len(t, dashboard.Employees, 3)
		require.Len(t, dashboard.Departments, 2)
		require.Len(t, dashboard.Designations, 1)
		require.Len(t, dashboard.Projects, 2)
		require.Equal(t, "CEO", dashboard.Employees[0].EmployeeName)
		require.Empty(t, dashboard.Employees[0].ManagerHierarchy)
		require.Equal(t, "Dev", dashboard.Employees[1].EmployeeName)
		require.Len(t, dashboard.Employees[1].ManagerHierarchy, 2)
		require.Equal(t, headID, dashboard.Employees[1].ManagerHierarchy[0].ID)
		require.Equal(t, ceoID, dashboard.Employees[1].ManagerHierarchy[1].ID)

		// поиск по email
		dashboard, err = handler.Dashboard(dictapimodels.EmployeeFilter{Search: "HEAD@"})
		require.NoError(t, err)
		require.Len(t, dashboard.Employees, 1)
		require.Equal(t, headID, dashboard.Employees[0].ID)

		dashboard, err = handler.Dashboard(dictapimodels.EmployeeFilter{Search: "de"})
		require.NoError(t, err)
		require.Len(t, dashboard.Employees, 1)
		require.Equal(t, devID, dashboard.Employees[0].ID)

		dashboard, err = handler.Dashboard(dictapimodels.EmployeeFilter{DesignationID: designationID})
		require.NoError(t, err)
		require.Len(t, dashboard.Employees, 1)
		require.Equal(t, devID, dashboard.Employees[0].ID)

		dashboard, err = handler.Dashboard(dictapimodels.EmployeeFilter{ProjectID: projectID})
		require.NoError(t, err)
		require.Len(t, dashboard.Employees, 1)
		require.Equal(t, headID, dashboard.Employees[0].ID)
		require.Len(t, dashboard.Employees[0].ManagerHierarchy, 1)
		require.Len(t, dashboard.Projects, 2)

		dashboard, err = handler.Dashboard(dictapimodels.EmployeeFilter{ProjectID: projectID, DepartmentID: departmentID})
		require.NoError(t, err)
		require.Empty(t, dashboard.Employees)

		list, rowCount, err := handler.List(dictapimodels.EmployeeFilter{Search: "example.com", DepartmentID: departmentID})
		require.NoError(t, err)
		require.Equal(t, int64(1), rowCount)
		require.Equal(t, devID, list[0].ID)
	})
}
