package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*FileStore, *time.Time) {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "cache"), true, ttl)
	require.NoError(t, err)
	clock := time.Date(2026, 1, 9, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }
	return store, &clock
}

func TestFileStore_SetGet(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)
	key := "http://localhost:8000/reports/outstanding"
	payload := json.RawMessage(`{"orders":[],"count":0}`)

	require.NoError(t, store.Set(key, payload))

	entry, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, key, entry.Key)
	assert.JSONEq(t, string(payload), string(entry.Data))

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFileStore_Miss(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)

	_, err := store.Get("http://localhost:8000/reports/dispatched?limit=50")
	assert.ErrorIs(t, err, ErrCacheNotFound)

	_, err = store.Get("")
	assert.ErrorIs(t, err, ErrInvalidCacheKey)
	assert.ErrorIs(t, store.Set("", nil), ErrInvalidCacheKey)
}

func TestFileStore_Expiry(t *testing.T) {
	store, clock := newTestStore(t, time.Minute)
	require.NoError(t, store.Set("k", json.RawMessage(`1`)))

	*clock = clock.Add(59 * time.Second)
	_, err := store.Get("k")
	require.NoError(t, err)

	*clock = clock.Add(time.Second)
	_, err = store.Get("k")
	require.ErrorIs(t, err, ErrCacheExpired)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, count, "expired entry is removed on read")
}

func TestFileStore_KeysWithSlashesAndQueries(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)
	a := "http://localhost:8000/reports/dispatched?search=a%2Fb&offset=0"
	b := "http://localhost:8000/reports/dispatched?search=a%2Fb&offset=50"

	require.NoError(t, store.Set(a, json.RawMessage(`"a"`)))
	require.NoError(t, store.Set(b, json.RawMessage(`"b"`)))

	ea, err := store.Get(a)
	require.NoError(t, err)
	eb, err := store.Get(b)
	require.NoError(t, err)
	assert.Equal(t, `"a"`, string(ea.Data))
	assert.Equal(t, `"b"`, string(eb.Data))
}

func TestFileStore_DeleteAndClear(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, store.Set(k, json.RawMessage(`{}`)))
	}

	require.NoError(t, store.Delete("a"))
	require.NoError(t, store.Delete("a"), "delete is idempotent")

	removed, err := store.Clear()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFileStore_CleanupExpired(t *testing.T) {
	store, clock := newTestStore(t, time.Minute)
	require.NoError(t, store.Set("old", json.RawMessage(`{}`)))

	*clock = clock.Add(2 * time.Minute)
	require.NoError(t, store.Set("fresh", json.RawMessage(`{}`)))
	require.NoError(t, os.WriteFile(filepath.Join(store.Directory(), "garbage.json"), []byte("{"), 0o600))

	removed, err := store.CleanupExpired()
	require.NoError(t, err)
	assert.Equal(t, 2, removed, "expired and corrupt entries are removed")

	_, err = store.Get("fresh")
	assert.NoError(t, err)
}

func TestFileStore_Disabled(t *testing.T) {
	store, err := NewFileStore("", false, time.Minute)
	require.NoError(t, err)

	assert.False(t, store.IsEnabled())
	_, err = store.Get("k")
	assert.ErrorIs(t, err, ErrCacheDisabled)
	assert.ErrorIs(t, store.Set("k", nil), ErrCacheDisabled)
	_, err = store.Clear()
	assert.ErrorIs(t, err, ErrCacheDisabled)
}

func TestNewFileStore_RequiresDirectory(t *testing.T) {
	_, err := NewFileStore("", true, time.Minute)
	assert.Error(t, err)
}

func TestResolveTTL(t *testing.T) {
	tests := []struct {
		name        string
		flag        int
		config      int
		enabled     bool
		wantTTL     time.Duration
		wantEnabled bool
		wantErr     bool
	}{
		{name: "config disabled", flag: 0, config: 300, enabled: false, wantTTL: 300 * time.Second},
		{name: "config enabled", flag: 0, config: 300, enabled: true, wantTTL: 300 * time.Second, wantEnabled: true},
		{name: "flag enables", flag: 60, config: 300, enabled: false, wantTTL: time.Minute, wantEnabled: true},
		{name: "zero ttl disables", flag: 0, config: 0, enabled: true},
		{name: "clamped", flag: MaxTTLSeconds * 2, wantTTL: MaxTTLSeconds * time.Second, wantEnabled: true},
		{name: "negative flag", flag: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ttl, enabled, err := ResolveTTL(tt.flag, tt.config, tt.enabled)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTTL, ttl)
			assert.Equal(t, tt.wantEnabled, enabled)
		})
	}
}
