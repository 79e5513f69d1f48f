package redis

// Key layout. Everything is scoped under the owning user so one
// user's collection can never bleed into another's.
const (
	// keyPrefix namespaces every key this service writes.
	keyPrefix = "lunaria:user:"
)

// entryKey returns the key holding one entry's JSON document.
func entryKey(userID, id string) string {
	return keyPrefix + userID + ":entry:" + id
}

// entrySetKey returns the key of the set of all entry ids for a user.
func entrySetKey(userID string) string {
	return keyPrefix + userID + ":entries"
}

// usageKey returns the sorted-set key for one usage-counter kind
// ("page" or "category").
func usageKey(userID, kind string) string {
	return keyPrefix + userID + ":usage:" + kind
}

// settingsKey returns the hash key holding a user's settings.
func settingsKey(userID string) string {
	return keyPrefix + userID + ":settings"
}
