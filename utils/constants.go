package utils

import "time"

// RevokedTokenPrefix prefixes Redis keys holding hashes of logged-out access tokens.
const RevokedTokenPrefix = "revoked:"

// AuthCachePrefix prefixes Redis keys caching a user's role after a successful lookup.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute
