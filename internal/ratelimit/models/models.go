package models

import (
	"math"
	"time"
)

// KeyPrefix namespaces rate limit keys by identifier kind.
type KeyPrefix string

const (
	KeyPrefixIP KeyPrefix = "ip"
)

// NewIPKey builds the bucket key for a client IP.
func NewIPKey(ip string) string {
	return string(KeyPrefixIP) + ":" + SanitizeKeySegment(ip)
}

// RateLimitResult is the outcome of a single check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}

// Denied builds a denial that resets at resetAt.
func Denied(limit int, now, resetAt time.Time) *RateLimitResult {
	retry := int(math.Ceil(resetAt.Sub(now).Seconds()))
	if retry < 1 {
		retry = 1
	}
	return &RateLimitResult{
		Allowed:    false,
		Limit:      limit,
		Remaining:  0,
		ResetAt:    resetAt,
		RetryAfter: retry,
	}
}
