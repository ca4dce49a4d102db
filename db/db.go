package db

import (
	"fmt"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

var DB *gorm.DB

type ConnectParams struct {
	Driver     string
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SqlitePath string
	DebugMode  bool
	Migrate    bool
}

func Connect(params ConnectParams) (err error) {
	if DB == nil {
		db, err := Open(params.Driver, dsn(params), params.DebugMode)
		if err != nil {
			return errors.Wrap(err, "Ошибка подключения к БД")
		}
		DB = db
		if params.Migrate {
			err = AutoMigrateDB(DB)
			if err != nil {
				return err
			}
		}
		log.WithField("driver", params.Driver).Info("Сервис успешно подключен к БД")
	}
	return nil
}

// Open открывает соединение без установки глобального DB, используется и в тестах
func Open(driver, dsn string, debugMode bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSqlite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, errors.Errorf("неизвестный драйвер БД: %s", driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gorm_logrus.New(),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	if driver == DriverSqlite {
		// sqlite не допускает конкурентных писателей
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if debugMode {
		db.Logger = logger.Default.LogMode(logger.Info)
		db = db.Debug()
	}
	return db, nil
}

func dsn(params ConnectParams) string {
	if params.Driver == DriverSqlite {
		return fmt.Sprintf("file:%s?_foreign_keys=on", params.SqlitePath)
	}
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s",
		params.Host, params.Port, params.User, params.Name, params.Password)
}

func PingDB() error {
	db, err := DB.DB()
	if err != nil {
		return err
	}
	if err = db.Ping(); err != nil {
		return err
	}
	return nil
}

func IsPostgres(tx *gorm.DB) bool {
	return tx.Dialector.Name() == DriverPostgres
}
