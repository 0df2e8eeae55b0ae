package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"coinwatch-api/internal/config"
	"coinwatch-api/pkg/confkit"
)

// ConfigSummaryLines returns human readable lines describing the loaded app config.
// Secrets are reported by presence only.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}

	lines := []string{
		fmt.Sprintf("Listen: %s:%d", cfg.Host, cfg.Port),
		fmt.Sprintf("Auth key: %s", presence(strings.TrimSpace(cfg.AuthKey) != "")),
		sectionLine("Price source config", cfg.PriceSource),
	}
	if ps := cfg.PriceSource.Value; ps != nil {
		lines = append(lines,
			fmt.Sprintf("Price source: %s (currency=%s limit=%d)", hostOf(ps.URL), ps.Currency, ps.Limit),
		)
	}
	lines = append(lines,
		fmt.Sprintf("Data store: %s (timeout=%s)", hostOf(cfg.DataStore.URL), cfg.DataStore.Timeout),
		fmt.Sprintf("History write limit: %s", writeLimit(cfg.DataStore.WritesPerSecond)),
		fmt.Sprintf("History timestamp offset: %s", cfg.DataStore.InsertTimestampOffset),
		fmt.Sprintf("Schedule (refresh/cleanup/retention): %s / %s / %s",
			cfg.Schedule.RefreshInterval, cfg.Schedule.CleanupInterval, cfg.Schedule.Retention),
		fmt.Sprintf("Redis mirror: %s", presence(cfg.RedisEnabled())),
	)
	return lines
}

// LogConfigSummary emits the configuration summary using logx.
func LogConfigSummary(cfg *config.Config) {
	lines := ConfigSummaryLines(cfg)
	if len(lines) == 0 {
		return
	}
	logx.Info("configuration summary")
	for _, line := range lines {
		logx.Infof("config • %s", line)
	}
}

func presence(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

// hostOf drops path and query so tokens embedded in URLs are not logged.
func hostOf(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "not configured"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "configured"
	}
	return u.Scheme + "://" + u.Host
}

func writeLimit(perSecond float64) string {
	if perSecond <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%g/s", perSecond)
}

func sectionLine[T any](name string, section confkit.Section[T]) string {
	switch {
	case strings.TrimSpace(section.File) != "":
		return fmt.Sprintf("%s: %s", name, section.File)
	case section.Value != nil:
		return fmt.Sprintf("%s: inline", name)
	default:
		return fmt.Sprintf("%s: not configured", name)
	}
}
