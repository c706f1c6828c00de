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

	"resume-analyzer/internal/llm"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func countingSuggester(calls *int, out string, err error) llm.Suggester {
	return llm.SuggesterFunc(func(ctx context.Context, prompt string) (string, error) {
		*calls++
		return out, err
	})
}

func TestSuggestCachesProviderAnswer(t *testing.T) {
	mr, rdb := setupRedis(t)
	calls := 0
	s := New(countingSuggester(&calls, "Use stronger verbs", nil), rdb, time.Hour, "openai:gpt-4o-mini")

	first, err := s.Suggest(context.Background(), "prompt")
	require.NoError(t, err)
	second, err := s.Suggest(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, "Use stronger verbs", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	stored, err := mr.Get(s.Key("prompt"))
	require.NoError(t, err)
	assert.Equal(t, "Use stronger verbs", stored)
	assert.Equal(t, time.Hour, mr.TTL(s.Key("prompt")))
}

func TestSuggestExpiresAfterTTL(t *testing.T) {
	mr, rdb := setupRedis(t)
	calls := 0
	s := New(countingSuggester(&calls, "tip", nil), rdb, time.Minute, "")

	_, err := s.Suggest(context.Background(), "prompt")
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = s.Suggest(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestSuggestDoesNotCacheErrors(t *testing.T) {
	mr, rdb := setupRedis(t)
	calls := 0
	s := New(countingSuggester(&calls, "", errors.New("provider down")), rdb, time.Hour, "")

	_, err := s.Suggest(context.Background(), "prompt")
	require.Error(t, err)
	assert.False(t, mr.Exists(s.Key("prompt")))
}

func TestSuggestFallsBackWhenRedisUnavailable(t *testing.T) {
	mr, rdb := setupRedis(t)
	mr.Close()

	calls := 0
	s := New(countingSuggester(&calls, "direct", nil), rdb, time.Hour, "")

	out, err := s.Suggest(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "direct", out)
	assert.Equal(t, 1, calls)
}

func TestKeyIsNamespacedDigest(t *testing.T) {
	s := New(nil, nil, 0, "gemini")
	plain := New(nil, nil, 0, "")

	assert.Equal(t, DefaultTTL, s.ttl)
	assert.NotEqual(t, s.Key("p"), plain.Key("p"))
	assert.Equal(t, s.Key("p"), s.Key("p"))
	assert.Contains(t, s.Key("p"), "resume-analyzer:enrich:gemini:")
	assert.Len(t, plain.Key("p"), len("resume-analyzer:enrich:")+64)
}

func TestNewRedisClientPing(t *testing.T) {
	mr, _ := setupRedis(t)

	rdb, err := NewRedisClient(context.Background(), Options{Addr: mr.Addr()})
	require.NoError(t, err)
	_ = rdb.Close()

	mr.Close()
	_, err = NewRedisClient(context.Background(), Options{Addr: mr.Addr()})
	require.Error(t, err)
}
