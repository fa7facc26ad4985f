package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(rdb)
	t.Cleanup(func() {
		SetClient(nil)
		_ = rdb.Close()
	})
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedUser) func() error {
		return func() error {
			fetches++
			dest.ID = 7
			dest.Username = "wren"
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, Aside(ctx, UserKey(7), &first, UserTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "wren", first.Username)

	var second cachedUser
	require.NoError(t, Aside(ctx, UserKey(7), &second, UserTTL, fetch(&second)))
	assert.Equal(t, 1, fetches, "second read should be served from cache")
	assert.Equal(t, first, second)
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var dest cachedUser
	err := Aside(ctx, UserKey(9), &dest, UserTTL, func() error {
		return errors.New("db down")
	})
	assert.Error(t, err)

	found, err := GetJSON(ctx, UserKey(9), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidateUser(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(3), cachedUser{ID: 3, Username: "finch"}, time.Minute))

	InvalidateUser(ctx, 3)

	var dest cachedUser
	found, err := GetJSON(ctx, UserKey(3), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetJSON_NilClient(t *testing.T) {
	SetClient(nil)

	var dest cachedUser
	found, err := GetJSON(context.Background(), UserKey(1), &dest)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(context.Background(), UserKey(1), dest, time.Minute))
}
