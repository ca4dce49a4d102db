package dbmodels

import (
	"github.com/pkg/errors"
)

type Department struct {
	BaseModel
	Name string `gorm:"type:varchar(100);uniqueIndex"`
}

func (d Department) Validate() error {
	if d.Name == "" {
		return errors.New("не указано название подразделения")
	}
	return nil
}

type Designation struct {
	BaseModel
	Title        string      `gorm:"type:varchar(100)"`
	DepartmentID string      `gorm:"type:varchar(36);index"`
	Department   *Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE"`
}

func (d Designation) Validate() error {
	if d.Title == "" {
		return errors.New("не указано название должности")
	}
	if d.DepartmentID == "" {
		return errors.New("отсутсвует ссылка на подразделение")
	}
	return nil
}
