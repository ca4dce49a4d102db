package assignmentapimodels

import (
	apperror "timesheet-backend/lib/utils/app-error"
	dbmodels "timesheet-backend/models/db"
)

type AssignRequest struct {
	ManagerID  string `json:"manager_id"`
	ProjectID  string `json:"project_id"`
	EmployeeID string `json:"employee_id"`
}

func (r AssignRequest) Validate() error {
	if r.ManagerID == "" || r.ProjectID == "" || r.EmployeeID == "" {
		return apperror.New(apperror.MissingField, "не заполнены обязательные поля: manager_id, project_id, employee_id")
	}
	return nil
}

type AttachManagerRequest struct {
	ManagerID string `json:"manager_id"`
	ProjectID string `json:"project_id"`
}

func (r AttachManagerRequest) Validate() error {
	if r.ManagerID == "" || r.ProjectID == "" {
		return apperror.New(apperror.MissingField, "не заполнены обязательные поля: manager_id, project_id")
	}
	return nil
}

type MemberRequest struct {
	EmployeeID string `json:"employee_id"`
	ProjectID  string `json:"project_id"`
}

func (r MemberRequest) Validate() error {
	if r.EmployeeID == "" || r.ProjectID == "" {
		return apperror.New(apperror.MissingField, "не заполнены обязательные поля: employee_id, project_id")
	}
	return nil
}

type AssignmentView struct {
	ID           string  `json:"id"`
	ManagerID    string  `json:"manager_id"`
	ManagerName  string  `json:"manager_name,omitempty"`
	ProjectID    string  `json:"project_id"`
	ProjectName  string  `json:"project_name,omitempty"`
	EmployeeID   *string `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
}

func AssignmentConvert(rec dbmodels.ManagerProjectAssignment) AssignmentView {
	result := AssignmentView{
		ID:         rec.ID,
		ManagerID:  rec.ManagerID,
		ProjectID:  rec.ProjectID,
		EmployeeID: rec.EmployeeID,
	}
	if rec.Manager != nil {
		result.ManagerName = rec.Manager.EmployeeName
	}
	if rec.Project != nil {
		result.ProjectName = rec.Project.Name
	}
	if rec.Employee != nil {
		result.EmployeeName = rec.Employee.EmployeeName
	}
	return result
}

type PersonShort struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RosterItem - проект с руководителями (участниками проекта) и сотрудниками под ними
type RosterItem struct {
	ProjectID   string        `json:"project_id"`
	ProjectName string        `json:"project_name"`
	Description string        `json:"description"`
	Managers    []PersonShort `json:"managers"`
	TeamMembers []PersonShort `json:"team_members"`
}
