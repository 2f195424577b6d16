package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrInvalidTarget is returned when the load target is not a non-nil pointer
// to a struct.
var ErrInvalidTarget = errors.New("config target must be a non-nil struct pointer")

var (
	dotenvOnce sync.Once

	cacheMu sync.Mutex
	cache   = make(map[reflect.Type]any)
)

// Load parses environment variables into cfg, which must be a pointer to a
// struct with env tags. The first call in the process also loads a .env file
// when one exists. Each struct type is parsed once; later calls for the same
// type receive the cached value.
func Load(cfg any) error {
	dotenvOnce.Do(func() {
		// Missing .env is the normal production case.
		_ = godotenv.Load()
	})

	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}

	t := v.Elem().Type()

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[t]; ok {
		v.Elem().Set(reflect.ValueOf(cached))
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse %s from environment: %w", t.String(), err)
	}

	cache[t] = v.Elem().Interface()
	return nil
}

// MustLoad is Load that panics on failure. Intended for application startup
// where a broken environment should stop the process.
func MustLoad(cfg any) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
