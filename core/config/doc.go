// Package config loads and aggregates the application configuration.
//
// Configuration comes from environment variables, optionally seeded from a
// .env file via godotenv. Defaults are declared as struct tags on the
// per-section Config types (server, storage, log, database, gamedata) and
// bound into Viper by reflection, so adding a new setting is a single struct
// field.
//
// Environment variables map onto nested keys by replacing dots with
// underscores, e.g. DATABASE_DRIVER=sqlite sets database.driver and
// GAMEDATA_STAGING_ROOT=/srv/staging sets gamedata.staging_root.
package config
