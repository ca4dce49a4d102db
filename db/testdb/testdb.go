// Package testdb поднимает изолированную sqlite базу в памяти для тестов
package testdb

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"timesheet-backend/db"
)

func New(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	conn, err := db.Open(db.DriverSqlite, dsn, false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrateDB(conn))
	t.Cleanup(func() {
		sqlDB, err := conn.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}
