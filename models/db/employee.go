package dbmodels

import (
	"net/mail"

	"github.com/pkg/errors"
)

type Employee struct {
	BaseModel
	EmployeeName  string       `gorm:"type:varchar(100)"`
	Email         string       `gorm:"type:varchar(100);index"`
	DepartmentID  *string      `gorm:"type:varchar(36);index"`
	Department    *Department  `gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL"`
	DesignationID *string      `gorm:"type:varchar(36)"`
	Designation   *Designation `gorm:"foreignKey:DesignationID;constraint:OnDelete:SET NULL"`
	ReportsToID   *string      `gorm:"type:varchar(36);index"`
	ReportsTo     *Employee    `gorm:"foreignKey:ReportsToID;constraint:OnDelete:SET NULL"`
}

func (e Employee) Validate() error {
	if e.EmployeeName == "" {
		return errors.New("не указано имя сотрудника")
	}
	if e.Email == "" {
		return errors.New("не указан email сотрудника")
	}
	if _, err := mail.ParseAddress(e.Email); err != nil {
		return errors.New("некорректный email сотрудника")
	}
	if e.ReportsToID != nil && *e.ReportsToID == e.ID && e.ID != "" {
		return errors.New("сотрудник не может подчиняться самому себе")
	}
	return nil
}

func (e Employee) GetReportsToName() string {
	if e.ReportsTo == nil {
		return ""
	}
	return e.ReportsTo.EmployeeName
}
