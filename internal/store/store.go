// Package store holds the small key/value preference stores banter persists
// UI state in. Values are plain strings; a missing key is not an error.
package store

// KV is a string key/value store.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
}
