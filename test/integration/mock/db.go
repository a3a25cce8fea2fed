//go:build integration

package mock

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/organized-life/backend/config"
	"github.com/organized-life/backend/internal/infra/db"
	"github.com/organized-life/backend/internal/integration/persistence/model"
)

var once sync.Once
var database *Db

// Db is an in-memory SQLite database shared by every scenario.
type Db struct {
	Database *db.Database
	DbConn   *gorm.DB
	models   map[string]any
}

// NewDb opens the shared database on first use. models maps table names to
// their GORM models for the table assertions.
func NewDb(models map[string]any) *Db {
	once.Do(func() {
		database = open(models)
	})
	return database
}

func open(models map[string]any) *Db {
	conn, err := db.NewConnection(&config.DatabaseConfig{
		Driver: db.DriverSQLite,
		URL:    "file::memory:?cache=shared",
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{
		Database: conn,
		DbConn:   conn.DB(),
		models:   models,
	}

	if err := newDbMock.ClearDB(); err != nil {
		panic(fmt.Sprintf("failed to clear database. err: %s", err.Error()))
	}

	return newDbMock
}

// ClearDB drops and recreates every table.
func (d *Db) ClearDB() error {
	all := model.All()
	if err := d.DbConn.Migrator().DropTable(all...); err != nil {
		return err
	}
	return d.Database.AutoMigrate(all...)
}

// GetModel returns the model registered for table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
