package config

const (
	// GormEngineSqlite stores submissions in a local sqlite file.
	GormEngineSqlite = "sqlite"

	// GormEngineMySQL stores submissions in a MySQL database.
	GormEngineMySQL = "mysql"

	// GormEnginePostgres stores submissions in a PostgreSQL database.
	GormEnginePostgres = "postgres"
)

// DB holds the database configuration settings.
// For the sqlite engine Name is the path of the store file and
// Host, Port, User and Password are ignored.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	GormEngine string
}
