package config

// Supported database engines.
const (
	EngineSQLite   = "sqlite"
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
)

// DB holds the database configuration settings.
type DB struct {
	Engine   string
	DSN      string // full connection string, overrides the fields below
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}
