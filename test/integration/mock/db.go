package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

type Db struct {
	DbConn *gorm.DB
	SQL    *sqlx.DB
	models map[string]any
	tables []string
}

// NewDb opens a shared in-memory SQLite database migrated with models. Every
// caller gets the same instance.
func NewDb(name string, models ...any) *Db {
	if db == nil {
		once.Do(
			func() {
				db = open(name, models)
			},
		)
	}

	return db
}

func open(name string, models []any) *Db {
	dbSQL, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	if err := dbConn.AutoMigrate(models...); err != nil {
		panic("failed to migrate database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: dbConn,
		SQL:    sqlx.NewDb(dbSQL, "sqlite"),
		models: make(map[string]any, len(models)),
		tables: make([]string, 0, len(models)),
	}

	for _, model := range models {
		stmt := &gorm.Statement{DB: dbConn}
		if err := stmt.Parse(model); err != nil {
			panic(fmt.Sprintf("failed to parse model %T. err: %s", model, err.Error()))
		}
		newDbMock.models[stmt.Schema.Table] = model
		newDbMock.tables = append(newDbMock.tables, stmt.Schema.Table)
	}

	return newDbMock
}

// ClearDB deletes every row, children before parents.
func (d *Db) ClearDB() error {
	for i := len(d.tables) - 1; i >= 0; i-- {
		if err := d.DbConn.Exec("DELETE FROM " + d.tables[i]).Error; err != nil {
			return fmt.Errorf("failed to clear table %s: %w", d.tables[i], err)
		}
	}
	return nil
}

// HealthCheck reports whether the connection answers a ping.
func (d *Db) HealthCheck() bool {
	sqlDB, err := d.DbConn.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
