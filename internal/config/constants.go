package config

// Default paths for databases and stored media
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./decypher.db"

	// DefaultMediaDir is where synthesized audio is stored when no other location is configured
	DefaultMediaDir = "./media"
)
