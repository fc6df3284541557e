package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T, prefix string) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := NewRedisWithClient(client, prefix)
	t.Cleanup(r.Close)
	return r, mr
}

func TestRedis_Key(t *testing.T) {
	r, _ := newTestRedis(t, "tracker")
	require.Equal(t, "tracker:session:abc", r.Key("session", "abc"))

	bare, _ := newTestRedis(t, "")
	require.Equal(t, "session:abc", bare.Key("session", "abc"))
}

func TestRedis_JSONRoundTripWithTTL(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t, "tracker")

	type value struct {
		Name string `json:"name"`
	}
	key := r.Key("session", "one")
	require.NoError(t, r.SetJSON(ctx, key, value{Name: "Ann"}, time.Minute))
	require.Equal(t, time.Minute, mr.TTL(key))

	var got value
	require.NoError(t, r.GetJSON(ctx, key, &got))
	require.Equal(t, "Ann", got.Name)

	mr.FastForward(2 * time.Minute)
	require.ErrorIs(t, r.GetJSON(ctx, key, &got), ErrKeyNotFound)
}

func TestRedis_SetJSONRequiresTTL(t *testing.T) {
	r, mr := newTestRedis(t, "tracker")
	require.Error(t, r.SetJSON(context.Background(), r.Key("k"), 1, 0))
	require.False(t, mr.Exists("tracker:k"))
}

func TestRedis_DeleteMissingKey(t *testing.T) {
	r, _ := newTestRedis(t, "tracker")
	require.NoError(t, r.Delete(context.Background(), r.Key("nothing")))
}

func TestRedis_PingUnconfigured(t *testing.T) {
	var r *Redis
	require.False(t, r.Configured())
	require.Error(t, r.Ping(context.Background()))
}
