package config

import "time"

// RateLimitConfig drives the token-bucket middleware. The same bucket
// shape is used by the Redis script and by the in-process fallback.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
	Debug          bool
}

func LoadRateLimitConfig() RateLimitConfig {
	return loadRateLimit("RATE_LIMIT_", RateLimitConfig{
		Capacity:       120,
		RefillTokens:   2,
		RefillInterval: time.Second,
		Prefix:         "seatmon:rl",
	})
}

// LoadGestureRateLimitConfig is the budget for drag and pinch move
// streams, which post at display frame rate for as long as a gesture
// lasts. The refill covers a sustained 60 Hz stream per client.
func LoadGestureRateLimitConfig() RateLimitConfig {
	return loadRateLimit("GESTURE_RATE_LIMIT_", RateLimitConfig{
		Capacity:       240,
		RefillTokens:   120,
		RefillInterval: time.Second,
		Prefix:         "seatmon:rl:gesture",
	})
}

func loadRateLimit(env string, base RateLimitConfig) RateLimitConfig {
	def := RateLimitConfig{
		Enabled:        envBool(env+"ENABLED", true),
		Capacity:       envInt(env+"CAPACITY", base.Capacity),
		RefillTokens:   envInt(env+"REFILL_TOKENS", base.RefillTokens),
		RefillInterval: envDur(env+"REFILL_INTERVAL", base.RefillInterval),
		TTL:            envDur(env+"TTL", 10*time.Minute),
		KeyStrategy:    envStr(env+"KEY_STRATEGY", "ip_route"),
		Prefix:         envStr(env+"PREFIX", base.Prefix),
		Debug:          envBool(env+"DEBUG", false),
	}
	if b := envInt(env+"BURST", -1); b > 0 {
		def.Capacity = b
	}
	if every := envDur(env+"REFILL_EVERY", 0); every > 0 {
		def.RefillTokens = 1
		def.RefillInterval = every
	}
	return def.normalize()
}

func (c RateLimitConfig) normalize() RateLimitConfig {
	if c.Capacity < 1 {
		c.Capacity = 1
	}
	if c.RefillTokens < 1 {
		c.RefillTokens = 1
	}
	if c.RefillInterval <= 0 {
		c.RefillInterval = time.Second
	}
	if minTTL := 5 * c.RefillInterval; c.TTL < minTTL {
		c.TTL = minTTL
	}
	return c
}
