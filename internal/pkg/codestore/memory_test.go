package codestore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_ExpiresOnRead(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore().WithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a@b.c", []byte("123456"), time.Minute))

	got, err := store.Get(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "123456", string(got))

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, "a@b.c")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_PutEvictsUnreadExpiredEntries(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore().WithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "old@b.c", []byte("111111"), time.Minute))
	require.NoError(t, store.Put(ctx, "keep@b.c", []byte("222222"), time.Hour))
	assert.Equal(t, 2, store.Len())

	now = now.Add(2 * time.Minute)
	require.NoError(t, store.Put(ctx, "new@b.c", []byte("333333"), time.Minute))
	assert.Equal(t, 2, store.Len())

	got, err := store.Get(ctx, "keep@b.c")
	require.NoError(t, err)
	assert.Equal(t, "222222", string(got))
}

func TestMemoryStore_ExpiredReadDoesNotDropFreshPut(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore().WithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a@b.c", []byte("111111"), time.Minute))
	now = now.Add(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = store.Get(ctx, "a@b.c")
		}()
		go func() {
			defer wg.Done()
			_ = store.Put(ctx, "a@b.c", []byte("222222"), time.Hour)
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "222222", string(got))
}

func TestJSONHelpers(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	type pending struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	require.NoError(t, PutJSON(ctx, store, "k", pending{Email: "x@y.z", Code: "000111"}, time.Hour))

	var out pending
	require.NoError(t, GetJSON(ctx, store, "k", &out))
	assert.Equal(t, "000111", out.Code)

	require.NoError(t, store.Delete(ctx, "k"))
	assert.ErrorIs(t, GetJSON(ctx, store, "k", &out), ErrNotFound)
}
