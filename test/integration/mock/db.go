package mock

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbOnce sync.Once
var db *Db

// Db wraps a shared in-memory sqlite connection used by the feature tests.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the shared in-memory database and migrates the given models.
// The models map is keyed by table name so assertion steps can look them up.
func NewDb(models map[string]any) *Db {
	dbOnce.Do(func() {
		db = open(models)
	})
	return db
}

func open(models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	// A single connection keeps every session on the same in-memory database.
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database: " + err.Error())
	}

	newDb := &Db{
		DbConn: dbConn,
		models: models,
	}

	if err := newDb.migrate(); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %s", err.Error()))
	}

	return newDb
}

func (d *Db) migrate() error {
	modelList := make([]any, 0, len(d.models))
	for _, model := range d.models {
		modelList = append(modelList, model)
	}

	if err := d.DbConn.AutoMigrate(modelList...); err != nil {
		return err
	}

	for _, model := range modelList {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table for model %T was not created", model)
		}
	}
	return nil
}

// ClearDB deletes all rows from every registered table. Runs before each
// scenario so state never leaks between them.
func (d *Db) ClearDB() error {
	for _, model := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return err
		}

		stmt := &gorm.Statement{DB: d.DbConn}
		if err := stmt.Parse(model); err != nil {
			return err
		}

		err = d.DbConn.Exec("DELETE FROM sqlite_sequence WHERE name = ?", stmt.Schema.Table).Error
		if err != nil && !strings.Contains(err.Error(), "no such table: sqlite_sequence") {
			return err
		}
	}
	return nil
}

// GetModel returns the registered model for a table name.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
