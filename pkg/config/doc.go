// Package config loads typed configuration structs from environment
// variables, optionally seeded from dotenv files.
//
// Struct fields are described with the tags understood by
// github.com/caarlos0/env/v11; dotenv files are read with
// github.com/joho/godotenv. Packages expose their own Config types
// (httpserver.Config, cors.Config, pg.Config, logger.Config) which can be
// embedded into one application struct:
//
//	type Config struct {
//		Log  logger.Config
//		HTTP httpserver.Config
//	}
//
//	cfg := config.MustLoad[Config]()
package config
