package cache

import (
	"strings"
	"time"
)

// Namespace is the Redis key prefix for the coinwatch application.
const Namespace = "coinwatch"

const defaultSnapshotTTL = 24 * time.Hour

// SnapshotTTL converts the configured TTL (seconds) into a duration.
// Zero falls back to one day; negative disables expiry.
func SnapshotTTL(seconds int) time.Duration {
	if seconds < 0 {
		return 0
	}
	if seconds == 0 {
		return defaultSnapshotTTL
	}
	return time.Duration(seconds) * time.Second
}

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	values = append(values, Namespace)
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}

// SnapshotLatestKey holds the JSON encoded latest coin snapshot.
func SnapshotLatestKey() string {
	return formatKey("snapshot", "latest")
}
