package dbmodels

import (
	"github.com/pkg/errors"
)

type Project struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);uniqueIndex"`
	Description string `gorm:"type:text"`
}

func (p Project) Validate() error {
	if p.Name == "" {
		return errors.New("не указано название проекта")
	}
	return nil
}

// EmployeeProject - участие сотрудника в проекте без привязки к руководителю
type EmployeeProject struct {
	BaseModel
	EmployeeID string    `gorm:"type:varchar(36);uniqueIndex:idx_employee_project"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	ProjectID  string    `gorm:"type:varchar(36);uniqueIndex:idx_employee_project"`
	Project    *Project  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// ManagerProjectAssignment - руководитель ведет сотрудника на проекте.
// EmployeeID == nil означает, что руководитель просто закреплен за проектом
type ManagerProjectAssignment struct {
	BaseModel
	ManagerID  string    `gorm:"type:varchar(36);index:idx_manager_project"`
	Manager    *Employee `gorm:"foreignKey:ManagerID;constraint:OnDelete:CASCADE"`
	ProjectID  string    `gorm:"type:varchar(36);index:idx_manager_project"`
	Project    *Project  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	EmployeeID *string   `gorm:"type:varchar(36);index"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

func (m ManagerProjectAssignment) IsManagerOnly() bool {
	return m.EmployeeID == nil
}
