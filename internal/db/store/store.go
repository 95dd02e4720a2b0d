// Package store opens scoped database connections for the configured engine.
//
// Every request acquires its own connection and releases it before the
// response is written, there is no process wide handle.
package store

import (
	"database/sql"
	"errors"

	"github.com/glebarez/sqlite"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/eingabe/eingabe/internal/config"
	"github.com/eingabe/eingabe/internal/db/dsn"
	gormlog "github.com/eingabe/eingabe/internal/logger/adapter/gorm"
)

var (
	// ErrConfigNil is returned when the accessor is created without config.
	ErrConfigNil = errors.New("config is nil")

	// ErrUnsupportedEngine is returned for an unknown gorm engine.
	ErrUnsupportedEngine = errors.New("unsupported gorm engine")
)

// Accessor opens connections to one database.
type Accessor struct {
	engine    string
	dsn       string
	dialector func(dsn string) gorm.Dialector
}

// Conn is an open connection. The caller must Close it.
type Conn struct {
	DB    *gorm.DB
	sqlDB *sql.DB
}

// New creates an accessor for cfg.DB.
func New(cfg *config.Config) (*Accessor, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	a := &Accessor{
		engine: cfg.DB.GormEngine,
		dsn:    dsn.Create(cfg),
	}

	switch cfg.DB.GormEngine {
	case config.GormEngineSqlite:
		a.dialector = sqlite.Open
	case config.GormEngineMySQL:
		a.dialector = mysql.Open
	case config.GormEnginePostgres:
		a.dialector = postgres.Open
	default:
		return nil, pkgerrors.Wrap(ErrUnsupportedEngine, cfg.DB.GormEngine)
	}

	return a, nil
}

// Engine returns the configured gorm engine name.
func (a *Accessor) Engine() string {
	return a.engine
}

// Open opens a new connection. For sqlite the store file is created on first use.
func (a *Accessor) Open() (*Conn, error) {
	db, err := gorm.Open(a.dialector(a.dsn), &gorm.Config{
		Logger: gormlog.New(),
	})
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to open %s database", a.engine)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to get database handle")
	}

	return &Conn{DB: db, sqlDB: sqlDB}, nil
}

// Close releases the connection.
func (c *Conn) Close() error {
	if err := c.sqlDB.Close(); err != nil {
		return pkgerrors.Wrap(err, "failed to close database")
	}

	return nil
}

// With runs fn on a fresh connection and closes it on every exit path,
// a panic in fn included. A close error is returned only if fn succeeded.
func (a *Accessor) With(fn func(db *gorm.DB) error) (err error) {
	conn, err := a.Open()
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := conn.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return fn(conn.DB)
}
