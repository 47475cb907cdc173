// Package config handles input from etc/main.toml and LEONWEB_* environment variables.
package config

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of environment variables overriding config keys,
	// e.g. LEONWEB_WEBSERVER_SECRETKEY overrides Webserver.SecretKey.
	EnvPrefix = "LEONWEB"

	// FileName is the name of the main config file inside the config path.
	FileName = "main.toml"
)

// Option adjusts the viper instance after the file was read.
type Option func(v *viper.Viper)

// WithDevMode forces dev mode regardless of file and environment.
func WithDevMode() Option {
	return func(v *viper.Viper) {
		v.Set("DevMode", true)
	}
}

// ReadConfig from config file.
func ReadConfig(path string, opts ...Option) (Config, error) {
	var c Config

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(filepath.Join(path, FileName))
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	for _, opt := range opts {
		opt(v)
	}

	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	return c, validate(&c)
}

// setDefaults registers every key viper should know about, so env overrides also
// work for keys missing in the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("DevMode", false)
	v.SetDefault("Title", "leonweb")

	v.SetDefault("Webserver.Port", 8080)                  //nolint:mnd
	v.SetDefault("Webserver.ShutDownTime", 5)             //nolint:mnd
	v.SetDefault("Webserver.URL", "http://localhost:8080")
	v.SetDefault("Webserver.SecretKey", "")
	v.SetDefault("Webserver.Metrics", true)
	v.SetDefault("Webserver.Session.ExpiryTime", 24*time.Hour) //nolint:mnd

	v.SetDefault("DB.Engine", EngineSQLite)
	v.SetDefault("DB.DSN", "")
	v.SetDefault("DB.Host", "")
	v.SetDefault("DB.Port", 0)
	v.SetDefault("DB.User", "")
	v.SetDefault("DB.Password", "")
	v.SetDefault("DB.Name", "leonweb.db")
	v.SetDefault("DB.Extras", "")

	v.SetDefault("Log.LogLevel", "info")
	v.SetDefault("Log.EnableAccessLogToConsole", false)
	v.SetDefault("Log.ReportCaller", false)
	v.SetDefault("Log.DisableCheckAlive", false)
	v.SetDefault("Log.LogSQL", false)
	v.SetDefault("Log.AppName", "leonweb")
	v.SetDefault("Log.ServiceName", "leonweb")
	v.SetDefault("Log.Console.Enabled", true)
	v.SetDefault("Log.Console.UseConsoleWriter", false)
	v.SetDefault("Log.File.Enabled", false)
	v.SetDefault("Log.File.Path", "./log")

	// zero sizes, ages and backups keep lumberjack's defaults
	for _, name := range []string{"Access", "Error", "Info", "Trace", "Warn"} {
		v.SetDefault("Log.File."+name+"Log", strings.ToLower(name)+".log")
		v.SetDefault("Log.File."+name+"MaxSize", 0)
		v.SetDefault("Log.File."+name+"MaxBackups", 0)
		v.SetDefault("Log.File."+name+"MaxAge", 0)
	}

	v.SetDefault("Upload.Dir", "./uploads")
	v.SetDefault("Upload.MaxSize", 5<<20) //nolint:mnd
	v.SetDefault("Upload.AllowedExtensions", []string{".gif", ".jpg", ".jpeg", ".png", ".webp"})

	v.SetDefault("Admin.Username", "admin")
	v.SetDefault("Admin.InitialPassword", "")

	v.SetDefault("Site.HomePosts", 5) //nolint:mnd
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return "", err //nolint: wrapcheck
	}

	return string(out), nil
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

// validate minimal config settings and fill in defaults for zero values.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = 24 * time.Hour //nolint:mnd
	}

	if c.DB.Engine == "" {
		c.DB.Engine = EngineSQLite
	}

	switch c.DB.Engine {
	case EngineSQLite, EngineMySQL, EnginePostgres:
	default:
		return errors.Wrap(ErrUnknownDBEngine, invalidErrMessage)
	}

	if c.Webserver.SecretKey == "" {
		if !c.DevMode {
			return errors.Wrap(ErrSecretKeyRequired, invalidErrMessage)
		}
	} else if !validSecretKey(c.Webserver.SecretKey) {
		return errors.Wrap(ErrInvalidSecretKey, invalidErrMessage)
	}

	if c.Admin.Username == "" {
		c.Admin.Username = "admin"
	}

	for i, ext := range c.Upload.AllowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		c.Upload.AllowedExtensions[i] = ext
	}

	return nil
}

func validSecretKey(key string) bool {
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return false
	}

	switch len(raw) {
	case 16, 24, 32: //nolint:mnd
		return true
	default:
		return false
	}
}
