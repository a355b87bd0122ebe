package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvSeed     = "FENCING_SEED"
	EnvMaxTick  = "FENCING_MAX_TICK"
	EnvLeague   = "FENCING_LEAGUE"
	EnvWinScore = "FENCING_WIN_SCORE"
	EnvOutside  = "FENCING_OUTSIDE"
)

// LookupFunc has the shape of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// EnvLookup layers the process environment over the values of an optional
// dotenv file. An empty path or a missing file only uses the environment.
func EnvLookup(path string) (LookupFunc, error) {
	file := map[string]string{}
	if path != "" {
		m, err := godotenv.Read(path)
		switch {
		case err == nil:
			file = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}, nil
}

// ApplyEnv overrides cfg fields from lookup.
func (c *MatchConfig) ApplyEnv(lookup LookupFunc) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvMaxTick, &c.MaxTick},
		{EnvLeague, &c.League},
		{EnvWinScore, &c.WinScore},
	}
	for _, it := range ints {
		v, ok := lookup(it.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", it.key, err)
		}
		*it.dst = n
	}
	if v, ok := lookup(EnvSeed); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = n
	}
	if v, ok := lookup(EnvOutside); ok && v != "" {
		c.Outside = v
	}
	return nil
}
