// Package config handles input from etc/main.toml, the environment and
// the JSON override variable.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of environment variables overriding single keys,
	// e.g. EINGABE_WEBSERVER_PORT.
	EnvPrefix = "EINGABE"

	// EnvConfigJSON holds a JSON document merged over the whole config.
	EnvConfigJSON = "EINGABE_CONFIG_JSON"

	// DefaultPath is used when no config path was given.
	DefaultPath = "./etc/"

	// DefaultSqliteExtras lets concurrent requests wait for the file lock.
	DefaultSqliteExtras = "_pragma=busy_timeout(5000)"

	defaultShutDownTime = 5
)

// ReadConfig from config file.
// A missing main.toml is not an error, the defaults apply.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	if path == "" {
		path = DefaultPath
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("main")
	v.SetConfigType("toml")
	v.AddConfigPath(path)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "failed to read main config file")
		}
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("title", "Eingabe")

	v.SetDefault("webserver.host", "0.0.0.0")
	v.SetDefault("webserver.port", 8000) //nolint:mnd
	v.SetDefault("webserver.shutdowntime", defaultShutDownTime)

	v.SetDefault("db.gormengine", GormEngineSqlite)
	v.SetDefault("db.name", "eingabe.db")
	v.SetDefault("db.extras", DefaultSqliteExtras)

	v.SetDefault("log.loglevel", "info")
	v.SetDefault("log.appname", "eingabe")
	v.SetDefault("log.servicename", "eingabe")
	v.SetDefault("log.console.enabled", true)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode "+EnvConfigJSON)
	}

	return c, nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	switch c.DB.GormEngine {
	case GormEngineSqlite, GormEngineMySQL, GormEnginePostgres:
	default:
		return errors.Wrap(ErrUnsupportedGormEngine, invalidErrMessage+": "+c.DB.GormEngine)
	}

	if c.DB.Name == "" {
		return errors.Wrap(ErrEmptyDBName, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	return nil
}
