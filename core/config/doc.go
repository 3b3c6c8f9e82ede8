// Package config loads application configuration from environment variables
// and an optional .env file.
//
// Configuration is split into partial configs owned by the packages that
// consume them (server, storage, log, database, report). Default values are
// declared as `default` struct tags next to the `mapstructure` keys and are
// registered in Viper through reflection, so adding a new setting never
// requires touching the loader.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	db, err := database.Connect(cfg.Database)
package config
