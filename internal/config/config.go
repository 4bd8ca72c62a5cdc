package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Library
		Auth
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Library struct {
		// QuarantineDelete relocates a deleted book's file into a
		// "deleted" subfolder instead of leaving it in place.
		QuarantineDelete bool
	}
	Auth struct {
		// TokenHash is a bcrypt hash of the API token. Empty disables auth.
		TokenHash string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8088)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("library_quarantine_delete", true)
	v.SetDefault("auth_token_hash", "")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Library: Library{
			QuarantineDelete: v.GetBool("LIBRARY_QUARANTINE_DELETE"),
		},
		Auth: Auth{
			TokenHash: v.GetString("AUTH_TOKEN_HASH"),
		},
	}
}
