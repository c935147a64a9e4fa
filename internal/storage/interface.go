package storage

// CredentialStore persists the single bearer token across process restarts.
// Absence is a valid state, not a failure: backends log their own errors and
// report them as "no token" on reads and as a no-op on writes.
type CredentialStore interface {
	// Get returns the stored token and whether one is present.
	Get() (string, bool)
	// Set replaces the stored token. Set("") removes it.
	Set(token string)
	// Name identifies the backend in diagnostics.
	Name() string
}

// HasToken reports whether store currently holds a token
func HasToken(store CredentialStore) bool {
	if store == nil {
		return false
	}
	_, ok := store.Get()
	return ok
}
