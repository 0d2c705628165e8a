// Package config loads typed configuration from environment variables.
//
// A .env file in the working directory is read once on first use (joho/godotenv),
// then struct fields are filled from `env` and `envDefault` tags (caarlos0/env).
// Each configuration type is parsed once and cached:
//
//	type Config struct {
//		Addr     string        `env:"SERVER_ADDR" envDefault:":8080"`
//		Strategy string        `env:"SESSION_STRATEGY" envDefault:"container"`
//		Idle     time.Duration `env:"SESSION_MAX_INACTIVE" envDefault:"30m"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
package config
