package gorm

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	dbTypePostgresql = "psql"
	dbTypeMysql      = "mysql"
	dbTypeSqlite     = "sqlite"
)

func dialector(dbType, dsn string) (gorm.Dialector, error) {
	switch dbType {
	case dbTypePostgresql:
		return postgres.Open(dsn), nil
	case dbTypeMysql:
		return mysql.Open(dsn), nil
	case dbTypeSqlite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("database type '%s' not supported", dbType)
	}
}
