package cachetier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeRedis struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	raw, _ := value.([]byte)
	f.data[key] = string(raw)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Close() error { return nil }

func TestRedisTier_PrefixesKeysAndRoundTrips(t *testing.T) {
	t.Parallel()

	client := newFakeRedis()
	tier := newRedisTier(client, "hoop")
	ctx := context.Background()

	if err := tier.Set(ctx, `team_averages|10|5`, []byte(`{"GamesCount":2}`), 5*time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := client.data[`hoop:team_averages|10|5`]; !ok {
		t.Fatalf("expected prefixed key, got %v", client.data)
	}
	if client.ttls[`hoop:team_averages|10|5`] != 5*time.Minute {
		t.Fatalf("unexpected ttl: %v", client.ttls)
	}

	raw, ok, err := tier.Get(ctx, `team_averages|10|5`)
	if err != nil || !ok || string(raw) != `{"GamesCount":2}` {
		t.Fatalf("unexpected get: %q %v %v", raw, ok, err)
	}
}

func TestRedisTier_MissAndFailure(t *testing.T) {
	t.Parallel()

	client := newFakeRedis()
	tier := newRedisTier(client, "")

	if _, ok, err := tier.Get(context.Background(), "missing"); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	client.getErr = errors.New("i/o timeout")
	if _, _, err := tier.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected redis failure to surface")
	}
}
