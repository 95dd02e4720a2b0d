package config

import (
	"errors"
)

var (
	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrUnsupportedGormEngine error if config db.gormengine is not sqlite, mysql or postgres.
	ErrUnsupportedGormEngine = errors.New("config db.gormengine is not supported")

	// ErrEmptyDBName error if config db.name is empty.
	ErrEmptyDBName = errors.New("config db.name can not be empty")
)
