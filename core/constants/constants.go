package constants

import "time"

// Service identity
const (
	ServiceName = "metra-api"
	APIBasePath = "/api/v1"
)

// Database pool settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Request handling
const (
	DefaultRequestTimeout = 15 * time.Second
	DefaultListLimit      = 50
	DefaultSiteListLimit  = 100
)

// Token scopes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Context keys
const (
	ContextTokenData = "token_data"
	ContextRequestID = "request_id"
)

// Redis key prefixes
const (
	RedisKeyTokenBlacklist = "metra:token:blacklist:"
)

// Token lifetimes
const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour
)
