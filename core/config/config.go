package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNotPointer is returned when Load receives something other than a pointer to a struct.
var ErrNotPointer = errors.New("config: target must be a non-nil pointer to struct")

var (
	dotenvOnce sync.Once
	cacheMu    sync.Mutex
	cache      = map[reflect.Type]any{}
)

// Load fills cfg from the environment. The first call also reads a .env file
// from the working directory if one exists; a missing file is not an error.
// Results are cached per type, so later calls for the same type return the
// first value without re-reading the environment.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNotPointer
	}
	t := reflect.TypeOf(cfg).Elem()
	if t.Kind() != reflect.Struct {
		return ErrNotPointer
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[t]; ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", t.Name(), err)
	}
	cache[t] = *cfg
	return nil
}

// MustLoad is like Load but panics on error. Intended for program startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops every cached value. Tests use it to reload after changing the environment.
func Reset() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	clear(cache)
}
