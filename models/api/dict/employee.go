package dictapimodels

import (
	"net/mail"

	"github.com/pkg/errors"
	apimodels "timesheet-backend/models/api"
	dbmodels "timesheet-backend/models/db"
)

type EmployeeData struct {
	EmployeeName  string  `json:"employee_name"`
	Email         string  `json:"email"`
	DepartmentID  *string `json:"department_id"`
	DesignationID *string `json:"designation_id"`
	ReportsToID   *string `json:"reports_to_id"`
}

func (c EmployeeData) Validate() error {
	if c.EmployeeName == "" {
		return errors.New("не указано имя сотрудника")
	}
	if c.Email == "" {
		return errors.New("не указан email сотрудника")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return errors.New("некорректный email сотрудника")
	}
	return nil
}

type EmployeeView struct {
	EmployeeData
	ID              string `json:"id"`
	DepartmentName  string `json:"department_name,omitempty"`
	DesignationName string `json:"designation_name,omitempty"`
	ReportsTo       string `json:"reports_to,omitempty"`
}

func EmployeeConvert(rec dbmodels.Employee) EmployeeView {
	result := EmployeeView{
		EmployeeData: EmployeeData{
			EmployeeName:  rec.EmployeeName,
			Email:         rec.Email,
			DepartmentID:  rec.DepartmentID,
			DesignationID: rec.DesignationID,
			ReportsToID:   rec.ReportsToID,
		},
		ID:        rec.ID,
		ReportsTo: rec.GetReportsToName(),
	}
	if rec.Department != nil {
		result.DepartmentName = rec.Department.Name
	}
	if rec.Designation != nil {
		result.DesignationName = rec.Designation.Title
	}
	return result
}

type EmployeeFilter struct {
	apimodels.Pagination
	Name          string `json:"name" query:"name"`
	Search        string `json:"search" query:"search"` // по имени или email
	DepartmentID  string `json:"department_id" query:"department_id"`
	DesignationID string `json:"designation_id" query:"designation_id"`
	ProjectID     string `json:"project_id" query:"project_id"` // есть записи о работе по проекту
}

type ReportsToData struct {
	ReportsToID *string `json:"reports_to_id"`
}

type ManagerView struct {
	ID           string `json:"id"`
	EmployeeName string `json:"employee_name"`
	Email        string `json:"email"`
	Designation  string `json:"designation,omitempty"`
}

func ManagerConvert(rec dbmodels.Employee) ManagerView {
	result := ManagerView{
		ID:           rec.ID,
		EmployeeName: rec.EmployeeName,
		Email:        rec.Email,
	}
	if rec.Designation != nil {
		result.Designation = rec.Designation.Title
	}
	return result
}

// EmployeeInfo - профиль сотрудника со структурой подчинения и проектами
type EmployeeInfo struct {
	Employee         EmployeeView     `json:"employee"`
	Department       *DepartmentView  `json:"department"`
	Designation      *DesignationView `json:"designation"`
	Projects         []ProjectView    `json:"projects"`
	ManagerHierarchy []ManagerView    `json:"manager_hierarchy"`
}

type DashboardEmployeeView struct {
	EmployeeView
	ManagerHierarchy []ManagerView `json:"manager_hierarchy"`
}

// DashboardView - сотрудники по фильтру вместе со справочниками для фильтров
type DashboardView struct {
	Employees    []DashboardEmployeeView `json:"employees"`
	Departments  []DepartmentView        `json:"departments"`
	Designations []DesignationView       `json:"designations"`
	Projects     []ProjectView           `json:"projects"`
}
