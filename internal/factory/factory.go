// Package factory is the thin, out-of-core-engine layer SPEC_FULL.md
// §2 describes as an external collaborator: it turns a YAML config
// file into a region and an *engine.Engine. None of the engine's
// invariants depend on this package; it only ever calls the engine's
// public constructor.
package factory

import (
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"blockalloc/internal/engine"
	"blockalloc/internal/region"
	"blockalloc/policy"
)

// Config is the on-disk shape a caller supplies to pick a region size
// and fit policy without writing Go code — the "policy selection at
// configuration time" the spec treats as external to the engine.
type Config struct {
	// RegionBytes is the size of the backing region in bytes.
	RegionBytes int `yaml:"regionBytes"`
	// Policy is one of "FirstFit", "NextFit", "BestFit", "WorstFit",
	// or empty for the default (FirstFit).
	Policy string `yaml:"policy"`
	// UseMmap selects an anonymous-mmap-backed region instead of a
	// plain Go heap slice. On platforms without mmap support Build
	// returns the error from region.AcquireMmap.
	UseMmap bool `yaml:"useMmap"`
}

// LoadConfig reads and parses a YAML config file at path.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "blockalloc: read config %s", path)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "blockalloc: parse config %s", path)
	}
	return cfg, nil
}

// Build constructs an engine from cfg, acquiring the region via the
// method cfg requests. The returned release func tears down the
// acquired region (a no-op for heap-backed regions) and must be called
// once the engine is no longer in use.
func Build(cfg Config, logger *slog.Logger) (eng *engine.Engine, release func() error, err error) {
	pol, err := policy.Parse(cfg.Policy)
	if err != nil {
		return nil, nil, err
	}

	var data []byte
	release = func() error { return nil }
	if cfg.UseMmap {
		data, err = region.AcquireMmap(cfg.RegionBytes)
		if err != nil {
			return nil, nil, err
		}
		release = func() error { return region.ReleaseMmap(data) }
	} else {
		data = region.NewHeap(cfg.RegionBytes)
	}

	eng = engine.New(data, pol, logger)
	return eng, release, nil
}
