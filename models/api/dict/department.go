package dictapimodels

import (
	"github.com/pkg/errors"
	dbmodels "timesheet-backend/models/db"
)

type DepartmentData struct {
	Name string `json:"name"`
}

type DepartmentView struct {
	DepartmentData
	ID string `json:"id"`
}

func (c DepartmentData) Validate() error {
	if c.Name == "" {
		return errors.New("не указано название подразделения")
	}
	return nil
}

func DepartmentConvert(rec dbmodels.Department) DepartmentView {
	return DepartmentView{
		DepartmentData: DepartmentData{
			Name: rec.Name,
		},
		ID: rec.ID,
	}
}

type DesignationData struct {
	Title        string `json:"title"`
	DepartmentID string `json:"department_id"`
}

type DesignationView struct {
	DesignationData
	ID             string `json:"id"`
	DepartmentName string `json:"department_name,omitempty"`
}

func (c DesignationData) Validate() error {
	if c.Title == "" {
		return errors.New("не указано название должности")
	}
	if c.DepartmentID == "" {
		return errors.New("отсутсвует ссылка на подразделение")
	}
	return nil
}

func DesignationConvert(rec dbmodels.Designation) DesignationView {
	result := DesignationView{
		DesignationData: DesignationData{
			Title:        rec.Title,
			DepartmentID: rec.DepartmentID,
		},
		ID: rec.ID,
	}
	if rec.Department != nil {
		result.DepartmentName = rec.Department.Name
	}
	return result
}
