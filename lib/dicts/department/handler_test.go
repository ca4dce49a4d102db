package departmentprovider

import (
	"testing"

	"github.com/stretchr/testify/require"
	"timesheet-backend/db/testdb"
	designationprovider "timesheet-backend/lib/dicts/designation"
	employeestore "timesheet-backend/lib/dicts/employee/store"
	apperror "timesheet-backend/lib/utils/app-error"
	dictapimodels "timesheet-backend/models/api/dict"
	dbmodels "timesheet-backend/models/db"
)

func TestDepartment(t *testing.T) {
	t.Run(`create, rename and unique name`, func(t *testing.T) {
		tx := testdb.New(t)
		handler := NewHandlerWithTx(tx)

		id, err := handler.Create(dictapimodels.DepartmentData{Name: "Engineering"})
		require.NoError(t, err)
		_, err = handler.Create(dictapimodels.DepartmentData{Name: "Engineering"})
		require.Error(t, err)
		require.True(t, apperror.Is(err, apperror.ConstraintViolation), err.Error())

		require.NoError(t, handler.Update(id, dictapimodels.DepartmentData{Name: "R&D"}))
		item, err := handler.Get(id)
		require.NoError(t, err)
		require.Equal(t, "R&D", item.Name)

		list, err := handler.List()
		require.NoError(t, err)
		require.Len(t, list, 1)

		_, err = handler.Get("missing")
		require.True(t, apperror.Is(err, apperror.NotFound))
	})

	t.Run(`delete removes designations and clears employees`, func(t *testing.T) {
		tx := testdb.New(t)
		handler := NewHandlerWithTx(tx)
		designations := designationprovider.NewHandlerWithTx(tx)

		departmentID, err := handler.Create(dictapimodels.DepartmentData{Name: "Sales"})
		require.NoError(t, err)
		designationID, err := designations.Create(dictapimodels.DesignationData{Title: "Manager", DepartmentID: departmentID})
		require.NoError(t, err)
		employees := employeestore.NewInstance(tx)
		employeeID, err := employees.Create(dbmodels.Employee{
			EmployeeName:  "Seller",
			Email:         "seller@example.com",
			DepartmentID:  &departmentID,
			DesignationID: &designationID,
		})
		require.NoError(t, err)

		require.NoError(t, handler.Delete(departmentID))

		employee, err := employees.GetByID(employeeID)
		require.NoError(t, err)
		require.NotNil(t, employee)
		require.Nil(t, employee.DepartmentID)
		require.Nil(t, employee.DesignationID)

		_, err = designations.Get(designationID)
		require.True(t, apperror.Is(err, apperror.NotFound))
		require.True(t, apperror.Is(handler.Delete(departmentID), apperror.NotFound))
	})
}
