package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	dbmodels "timesheet-backend/models/db"
)

// порядок важен: таблицы со ссылками создаются после справочников
var migrationModels = []struct {
	name  string
	model interface{}
}{
	{"Department", &dbmodels.Department{}},
	{"Designation", &dbmodels.Designation{}},
	{"Employee", &dbmodels.Employee{}},
	{"Project", &dbmodels.Project{}},
	{"EmployeeProject", &dbmodels.EmployeeProject{}},
	{"ManagerProjectAssignment", &dbmodels.ManagerProjectAssignment{}},
	{"DailyLog", &dbmodels.DailyLog{}},
	{"DailyLogChange", &dbmodels.DailyLogChange{}},
}

func AutoMigrateDB(tx *gorm.DB) error {
	log.Info("Запуск миграций")
	for _, item := range migrationModels {
		if err := tx.AutoMigrate(item.model); err != nil {
			return errors.Wrapf(err, "ошибка создания структуры %s", item.name)
		}
	}
	log.Info("Миграция прошла успешно")
	return nil
}
