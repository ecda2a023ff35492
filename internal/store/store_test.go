package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, KeyState)
	require.NoError(t, err)
	assert.False(t, ok, "fresh store should be empty")

	require.NoError(t, kv.Put(ctx, KeyState, []byte(`{"currency":"USD"}`)))
	got, ok, err := kv.Get(ctx, KeyState)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"currency":"USD"}`, string(got))

	require.NoError(t, kv.Put(ctx, KeyState, []byte(`{"currency":"EUR"}`)))
	got, _, err = kv.Get(ctx, KeyState)
	require.NoError(t, err)
	assert.JSONEq(t, `{"currency":"EUR"}`, string(got), "put overwrites")

	require.NoError(t, kv.Put(ctx, KeyLog, []byte(`[]`)))
	require.NoError(t, kv.Delete(ctx, KeyState))
	_, ok, err = kv.Get(ctx, KeyState)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = kv.Get(ctx, KeyLog)
	require.NoError(t, err)
	assert.True(t, ok, "delete only touches its own key")

	require.NoError(t, kv.Delete(ctx, "missing"), "deleting an absent key is not an error")
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	testKV(t, m)
}

func TestMemory_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	buf := []byte("abc")
	require.NoError(t, m.Put(ctx, "k", buf))
	buf[0] = 'z'

	got, _, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, _, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemory_Closed(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Close())

	_, _, err := m.Get(ctx, KeyLog)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, m.Put(ctx, KeyLog, nil), ErrClosed)
}

func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	testKV(t, s)
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, KeyLog, []byte(`[{"id":"1"}]`)))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	got, ok, err := s.Get(ctx, KeyLog)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, string(got))

	at, err := s.UpdatedAt(ctx, KeyLog)
	require.NoError(t, err)
	assert.False(t, at.IsZero())
}

func TestRedis_KeyPrefix(t *testing.T) {
	r := &Redis{prefix: "tarifa:"}
	assert.Equal(t, "tarifa:state", r.key(KeyState))

	r = &Redis{}
	assert.Equal(t, "log", r.key(KeyLog))
}

func TestOpenRedis_Unreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := OpenRedis(ctx, RedisOptions{Addr: "127.0.0.1:1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to redis")
}
