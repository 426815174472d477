package storage

import "context"

// GetString returns the value for key as a string, or "" when the key is
// absent.
func GetString(ctx context.Context, r Repository, key string) (string, error) {
	b, err := r.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// SetString stores value under key. An empty value deletes the key, so a
// cleared field does not linger as an empty row.
func SetString(ctx context.Context, r Repository, key, value string) error {
	if value == "" {
		return r.Delete(ctx, key)
	}
	return r.Set(ctx, key, []byte(value))
}
