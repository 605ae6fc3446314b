package frameops

import (
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"tomyframe/pkg/config"
	"tomyframe/pkg/logging"
)

type settings struct {
	hashSeed       uint64
	rechunkWorkers int
	logger         *slog.Logger
}

var (
	current atomic.Pointer[settings]
	// guards read-modify-write of current
	mu sync.Mutex
)

func init() {
	current.Store(&settings{
		hashSeed:       config.DefaultHashSeed,
		rechunkWorkers: config.DefaultRechunkWorkers,
		logger:         logging.Discard(),
	})
}

// Configure applies the hash seed and rechunk workers of cfg. The logger is
// left as is; use SetLogger for that.
func Configure(cfg config.Config) {
	mu.Lock()
	defer mu.Unlock()
	prev := current.Load()
	workers := cfg.RechunkWorkers
	if workers <= 0 {
		workers = 1
	}
	current.Store(&settings{
		hashSeed:       cfg.HashSeed,
		rechunkWorkers: workers,
		logger:         prev.logger,
	})
}

// SetLogger installs the logger used for mutation traces. nil silences them.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = logging.Discard()
	}
	mu.Lock()
	defer mu.Unlock()
	prev := current.Load()
	current.Store(&settings{
		hashSeed:       prev.hashSeed,
		rechunkWorkers: prev.rechunkWorkers,
		logger:         l,
	})
}

func Logger() *slog.Logger { return current.Load().logger }
func HashSeed() uint64     { return current.Load().hashSeed }
func RechunkWorkers() int  { return current.Load().rechunkWorkers }

// ConfigureFromEnv loads config.FromEnv, applies it and logs to stderr at the
// configured level.
func ConfigureFromEnv() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	Configure(cfg)
	SetLogger(logging.New(cfg.LogLevel, os.Stderr))
	return nil
}
