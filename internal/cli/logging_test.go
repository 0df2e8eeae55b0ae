package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinwatch-api/internal/config"
	"coinwatch-api/pkg/confkit"
	"coinwatch-api/pkg/pricesource"
)

func TestConfigSummaryLinesHidesSecrets(t *testing.T) {
	cfg := &config.Config{
		AuthKey: "super-secret",
		PriceSource: confkit.Section[pricesource.Config]{
			File: "/srv/etc/pricesource.yaml",
			Value: &pricesource.Config{
				URL:      "https://api.livecoinwatch.com/coins/list",
				APIKey:   "lcw-secret",
				Currency: "INR",
				Limit:    100,
			},
		},
		DataStore: config.DataStoreConf{URL: "https://db.example.com/query?token=abc", Timeout: 10 * time.Second},
	}
	cfg.Host, cfg.Port = "0.0.0.0", 5555

	lines := ConfigSummaryLines(cfg)
	joined := strings.Join(lines, "\n")

	assert.Contains(t, joined, "Listen: 0.0.0.0:5555")
	assert.Contains(t, joined, "Auth key: configured")
	assert.Contains(t, joined, "Price source config: /srv/etc/pricesource.yaml")
	assert.Contains(t, joined, "Price source: https://api.livecoinwatch.com (currency=INR limit=100)")
	assert.Contains(t, joined, "Data store: https://db.example.com (timeout=10s)")
	assert.Contains(t, joined, "History write limit: unlimited")
	assert.Contains(t, joined, "Redis mirror: not configured")
	for _, secret := range []string{"super-secret", "lcw-secret", "token=abc"} {
		require.NotContains(t, joined, secret)
	}
}

func TestConfigSummaryLinesNil(t *testing.T) {
	require.Equal(t, []string{"Configuration: <nil>"}, ConfigSummaryLines(nil))
}

func TestHostOf(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "not configured"},
		{in: "https://db.example.com/path", want: "https://db.example.com"},
		{in: "not a url", want: "configured"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, hostOf(tt.in))
		})
	}
}
