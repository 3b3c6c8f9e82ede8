package database

// Config holds configuration for the scan database connection.
type Config struct {
	// Driver is the database driver (sqlite, mysql).
	Driver string `mapstructure:"driver" default:"sqlite"`
	// Path is the SQLite database file. Only used when Driver is sqlite.
	Path string `mapstructure:"path" default:"scanned_items.sqlite3"`
	// Host is the database host. Only used when Driver is mysql.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port. Only used when Driver is mysql.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user. Only used when Driver is mysql.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password. Only used when Driver is mysql.
	Password string `mapstructure:"password" default:""`
	// Name is the database name. Only used when Driver is mysql.
	Name string `mapstructure:"name" default:"listscanner"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
