//go:build integration

package draft

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"onboard/pkg/sentinel"
	"onboard/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	ctx   context.Context
	redis *containers.RedisContainer
	cache *RedisCache
}

func TestRedisCacheSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.ctx = context.Background()
	s.redis = containers.NewRedisContainer(s.T())
	s.cache = NewRedisCache(s.redis.Client, time.Hour)
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
}

func (s *RedisCacheSuite) TestPutGetDelete() {
	entry := Entry{
		Values:  map[string]any{"text-1": "Jane Draft", "checkbox-2": true},
		SavedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	s.Require().NoError(s.cache.Put(s.ctx, "tok-1", "jane.doe@example.com", entry))

	got, err := s.cache.Get(s.ctx, "tok-1", "jane.doe@example.com")
	s.Require().NoError(err)
	s.Equal("Jane Draft", got.Values["text-1"])
	s.Equal(true, got.Values["checkbox-2"])
	s.True(got.SavedAt.Equal(entry.SavedAt))

	s.Require().NoError(s.cache.Delete(s.ctx, "tok-1", "jane.doe@example.com"))
	_, err = s.cache.Get(s.ctx, "tok-1", "jane.doe@example.com")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisCacheSuite) TestGetMissing() {
	_, err := s.cache.Get(s.ctx, "tok-none", "nobody@example.com")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisCacheSuite) TestKeysAreScopedPerRecipient() {
	s.Require().NoError(s.cache.Put(s.ctx, "tok-1", "a@example.com", Entry{Values: map[string]any{"f": "a"}}))
	s.Require().NoError(s.cache.Put(s.ctx, "tok-1", "b@example.com", Entry{Values: map[string]any{"f": "b"}}))

	gotA, err := s.cache.Get(s.ctx, "tok-1", "a@example.com")
	s.Require().NoError(err)
	gotB, err := s.cache.Get(s.ctx, "tok-1", "b@example.com")
	s.Require().NoError(err)
	s.Equal("a", gotA.Values["f"])
	s.Equal("b", gotB.Values["f"])
}

func (s *RedisCacheSuite) TestTTLApplied() {
	s.Require().NoError(s.cache.Put(s.ctx, "tok-ttl", "x@example.com", Entry{Values: map[string]any{}}))

	ttl, err := s.redis.Client.TTL(s.ctx, cacheKey("tok-ttl", "x@example.com")).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Hour)
}
