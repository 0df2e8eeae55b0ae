package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"

	"coinwatch-api/pkg/confkit"
	"coinwatch-api/pkg/pricesource"
)

const (
	defaultRefreshInterval = 20 * time.Second
	defaultCleanupInterval = 6 * time.Hour
	defaultRetention       = 7 * 24 * time.Hour
	defaultTickTimeout     = 15 * time.Second
)

type DataStoreConf struct {
	// URL of the SQL-over-HTTP endpoint, usually ${DBMAX_API_URL}.
	URL     string
	Timeout time.Duration `json:",default=10s"`
	// WritesPerSecond paces history writes; 0 means unlimited.
	WritesPerSecond float64 `json:",optional"`
	// InsertTimestampOffset shifts recorded history timestamps relative to
	// now. The default stamps rows ten days back, as the history tables
	// have always been written; set 0s to stamp rows with the current time.
	InsertTimestampOffset time.Duration `json:",default=-240h"`
}

type ScheduleConf struct {
	RefreshInterval time.Duration `json:",default=20s"`
	CleanupInterval time.Duration `json:",default=6h"`
	Retention       time.Duration `json:",default=168h"`
	TickTimeout     time.Duration `json:",default=15s"`
}

type Config struct {
	rest.RestConf
	// AuthKey must match the auth-key header on every API call. It is also
	// the token sent to the data store.
	AuthKey     string
	PriceSource confkit.Section[pricesource.Config]
	DataStore   DataStoreConf
	Schedule    ScheduleConf    `json:",optional"`
	Redis       redis.RedisConf `json:",optional"`
	SnapshotTTL int             `json:",default=86400"` // seconds

	mainPath string
	baseDir  string
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	var cfg Config
	if err := conf.Load(absPath, &cfg, conf.UseEnv()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", absPath, err)
	}

	cfg.mainPath = absPath
	cfg.baseDir = filepath.Dir(absPath)

	if err := cfg.hydrateSections(); err != nil {
		return nil, err
	}
	if err := cfg.validateSections(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields set by unmarshalling. conf.Load calls it before
// file-backed sections are hydrated, so sections are checked separately.
func (c *Config) Validate() error {
	c.applyScheduleDefaults()
	if strings.TrimSpace(c.AuthKey) == "" {
		return errors.New("config: authKey is required")
	}
	if strings.TrimSpace(c.DataStore.URL) == "" {
		return errors.New("config: dataStore.url is required")
	}
	if c.DataStore.WritesPerSecond < 0 {
		return errors.New("config: dataStore.writesPerSecond must not be negative")
	}
	return c.validateSchedule()
}

// validateSections runs once hydrateSections has loaded the section files.
func (c *Config) validateSections() error {
	if c.PriceSource.Value == nil {
		return errors.New("config: priceSource.file is required")
	}
	return nil
}

func (c *Config) applyScheduleDefaults() {
	if c.Schedule.RefreshInterval == 0 {
		c.Schedule.RefreshInterval = defaultRefreshInterval
	}
	if c.Schedule.CleanupInterval == 0 {
		c.Schedule.CleanupInterval = defaultCleanupInterval
	}
	if c.Schedule.Retention == 0 {
		c.Schedule.Retention = defaultRetention
	}
	if c.Schedule.TickTimeout == 0 {
		c.Schedule.TickTimeout = defaultTickTimeout
	}
}

func (c *Config) validateSchedule() error {
	if c.Schedule.RefreshInterval < 0 {
		return errors.New("config: schedule.refreshInterval must be positive")
	}
	if c.Schedule.CleanupInterval < 0 {
		return errors.New("config: schedule.cleanupInterval must be positive")
	}
	if c.Schedule.Retention < 0 {
		return errors.New("config: schedule.retention must be positive")
	}
	if c.Schedule.TickTimeout < 0 {
		return errors.New("config: schedule.tickTimeout must be positive")
	}
	return nil
}

func (c *Config) hydrateSections() error {
	if err := c.PriceSource.Hydrate(c.baseDir, pricesource.LoadConfig); err != nil {
		return fmt.Errorf("load price source config: %w", err)
	}
	return nil
}

// RedisEnabled reports whether the snapshot mirror should be used.
func (c *Config) RedisEnabled() bool {
	return strings.TrimSpace(c.Redis.Host) != ""
}

func (c *Config) MainPath() string {
	return c.mainPath
}

func (c *Config) BaseDir() string {
	return c.baseDir
}
