package main

import (
	"github.com/dmitrymomot/sessionlab/core/cookie"
	"github.com/dmitrymomot/sessionlab/core/httpsession"
	"github.com/dmitrymomot/sessionlab/core/server"
	"github.com/dmitrymomot/sessionlab/integration/database/redis"
)

type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"sessionlab"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"debug"`

	// SessionStrategy is one of container, manager, cookie.
	SessionStrategy string `env:"SESSION_STRATEGY" envDefault:"container"`
	// AuthGate is one of interceptor, filter, none.
	AuthGate string `env:"AUTH_GATE" envDefault:"interceptor"`
	SeedData bool   `env:"SEED_DATA" envDefault:"true"`

	Server  server.Config
	Cookie  cookie.Config
	Session httpsession.Config
	Redis   redis.Config
}
