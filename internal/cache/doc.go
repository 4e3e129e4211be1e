// Package cache stores backend GET responses on disk with a time-to-live.
//
// Entries are JSON files named by the SHA-256 of their key, written atomically through a
// temporary file and rename. A disabled store answers every call with ErrCacheDisabled so
// callers can treat "no cache" and "cache miss" the same way.
package cache
