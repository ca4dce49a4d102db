package employeestore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	apperror "timesheet-backend/lib/utils/app-error"
	dictapimodels "timesheet-backend/models/api/dict"
	dbmodels "timesheet-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Employee) (id string, err error)
	GetByID(id string) (rec *dbmodels.Employee, err error)
	GetByEmail(email string) (rec *dbmodels.Employee, err error)
	List(filter dictapimodels.EmployeeFilter) (list []dbmodels.Employee, rowCount int64, err error)
	ListAll(filter dictapimodels.EmployeeFilter) (list []dbmodels.Employee, err error)
	ListByIDs(ids []string) (list []dbmodels.Employee, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	ClearDepartment(departmentID string) error
	ClearDesignation(designationIDs []string) error
	ClearReportsTo(managerID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Employee) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", apperror.Wrap(apperror.InvalidData, err.Error(), err)
	}
	err = i.db.
		Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", apperror.FromStorage(err, "ошибка сохранения сотрудника")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
	err := i.db.
		Where("id = ?", id).
		Preload(clause.Associations).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByEmail(email string) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
	err := i.db.
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Preload(clause.Associations).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List(filter dictapimodels.EmployeeFilter) (list []dbmodels.Employee, rowCount int64, err error) {
	list = []dbmodels.Employee{}
	tx := i.filtered(filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	err = tx.
		Preload(clause.Associations).
		Order("employee_name ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

// ListAll - все сотрудники по фильтру, без постраничного вывода
func (i impl) ListAll(filter dictapimodels.EmployeeFilter) (list []dbmodels.Employee, err error) {
	list = []dbmodels.Employee{}
	err = i.filtered(filter).
		Preload(clause.Associations).
		Order("employee_name ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) filtered(filter dictapimodels.EmployeeFilter) *gorm.DB {
	tx := i.db.Model(&dbmodels.Employee{})
	if filter.Name != "" {
		tx = tx.Where("LOWER(employee_name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		tx = tx.Where("LOWER(employee_name) LIKE ? OR LOWER(email) LIKE ?", search, search)
	}
	if filter.DepartmentID != "" {
		tx = tx.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.DesignationID != "" {
		tx = tx.Where("designation_id = ?", filter.DesignationID)
	}
	if filter.ProjectID != "" {
		// сотрудники, у которых есть записи о работе по проекту
		withLogs := i.db.
			Model(&dbmodels.DailyLog{}).
			Distinct("employee_id").
			Where("project_id = ?", filter.ProjectID)
		tx = tx.Where("id IN (?)", withLogs)
	}
	return tx
}

func (i impl) ListByIDs(ids []string) (list []dbmodels.Employee, err error) {
	list = []dbmodels.Employee{}
	if len(ids) == 0 {
		return list, nil
	}
	err = i.db.
		Where("id IN ?", ids).
		Order("employee_name ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Employee{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return apperror.FromStorage(err, "ошибка обновления сотрудника")
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Employee{
		BaseModel: dbmodels.BaseModel{
			ID: id,
		},
	}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return apperror.FromStorage(err, "ошибка удаления сотрудника")
	}
	return nil
}

func (i impl) ClearDepartment(departmentID string) error {
	return i.clear("department_id", []string{departmentID})
}

func (i impl) ClearDesignation(designationIDs []string) error {
	return i.clear("designation_id", designationIDs)
}

func (i impl) ClearReportsTo(managerID string) error {
	return i.clear("reports_to_id", []string{managerID})
}

func (i impl) clear(column string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Employee{}).
		Where(column+" IN ?", ids).
		Update(column, nil).
		Error
	if err != nil {
		return apperror.FromStorage(err, "ошибка обновления сотрудников")
	}
	return nil
}
