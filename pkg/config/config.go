package config

import (
	"log/slog"
	"os"
	"strconv"

	"tomyframe/pkg/engine/types"
	"tomyframe/pkg/logging"
)

const (
	EnvChunkSize      = "TOMYFRAME_CHUNK_SIZE"
	EnvRechunkWorkers = "TOMYFRAME_RECHUNK_WORKERS"
	EnvHashSeed       = "TOMYFRAME_HASH_SEED"
	EnvLogLevel       = "TOMYFRAME_LOG_LEVEL"
)

const (
	DefaultChunkSize      = 4096
	DefaultRechunkWorkers = 4
	// DefaultHashSeed keeps row hashes stable between processes.
	DefaultHashSeed uint64 = 0x9E3779B97F4A7C15
)

type Config struct {
	// ChunkSize is the number of rows per batch read by the executor.
	ChunkSize int
	// RechunkWorkers bounds the goroutines used to compact columns.
	RechunkWorkers int
	HashSeed       uint64
	LogLevel       slog.Level
}

func Default() Config {
	return Config{
		ChunkSize:      DefaultChunkSize,
		RechunkWorkers: DefaultRechunkWorkers,
		HashSeed:       DefaultHashSeed,
		LogLevel:       slog.LevelInfo,
	}
}

// FromEnv overlays the TOMYFRAME_* variables on Default. Every malformed
// variable is reported in one ValidationError.
func FromEnv() (Config, error) {
	cfg := Default()
	verr := &types.ValidationError{}

	if v, ok := os.LookupEnv(EnvChunkSize); ok {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil:
			verr.AddErr(err, EnvChunkSize)
		case n <= 0:
			verr.Add("must be positive", EnvChunkSize)
		default:
			cfg.ChunkSize = n
		}
	}

	if v, ok := os.LookupEnv(EnvRechunkWorkers); ok {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil:
			verr.AddErr(err, EnvRechunkWorkers)
		case n <= 0:
			verr.Add("must be positive", EnvRechunkWorkers)
		default:
			cfg.RechunkWorkers = n
		}
	}

	if v, ok := os.LookupEnv(EnvHashSeed); ok {
		seed, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			verr.AddErr(err, EnvHashSeed)
		} else {
			cfg.HashSeed = seed
		}
	}

	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		level, err := logging.ParseLevel(v)
		if err != nil {
			verr.AddErr(err, EnvLogLevel)
		} else {
			cfg.LogLevel = level
		}
	}

	if err := verr.ErrOrNil(); err != nil {
		return Default(), err
	}
	return cfg, nil
}
