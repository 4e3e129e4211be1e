package cache

import (
	"fmt"
	"time"
)

// MaxTTLSeconds caps cached report responses at one day.
const MaxTTLSeconds = 86400

// ResolveTTL picks the effective TTL from the --cache-ttl flag and the config file.
// A positive flag value enables the cache regardless of configuration; zero defers to the
// config. The returned bool reports whether caching is on.
func ResolveTTL(flagSeconds, configSeconds int, configEnabled bool) (time.Duration, bool, error) {
	if flagSeconds < 0 {
		return 0, false, fmt.Errorf("cache-ttl must be >= 0, got %d", flagSeconds)
	}
	seconds := configSeconds
	enabled := configEnabled
	if flagSeconds > 0 {
		seconds = flagSeconds
		enabled = true
	}
	if seconds <= 0 {
		return 0, false, nil
	}
	if seconds > MaxTTLSeconds {
		seconds = MaxTTLSeconds
	}
	return time.Duration(seconds) * time.Second, enabled, nil
}
