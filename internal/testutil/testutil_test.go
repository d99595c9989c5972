package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvBool(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", " y "} {
		t.Setenv("TESTUTIL_FLAG", v)
		assert.True(t, envBool("TESTUTIL_FLAG"), v)
	}
	t.Setenv("TESTUTIL_FLAG", "off")
	assert.False(t, envBool("TESTUTIL_FLAG"))
}

func TestRedisCandidates(t *testing.T) {
	t.Setenv("TEST_REDIS_ADDR", "")
	t.Setenv("REDIS_ADDR", "ci-redis:6379")
	assert.Equal(t, []string{"ci-redis:6379", "redis:6379", "localhost:6379"}, redisCandidates())

	t.Setenv("TEST_REDIS_ADDR", "127.0.0.1:7000")
	assert.Equal(t, []string{"127.0.0.1:7000"}, redisCandidates())
}

func TestTestRedisDB(t *testing.T) {
	t.Setenv("TEST_REDIS_DB", "")
	assert.Equal(t, defaultTestRedisDB, testRedisDB(t))

	t.Setenv("TEST_REDIS_DB", "3")
	assert.Equal(t, 3, testRedisDB(t))

	t.Setenv("TEST_REDIS_DB", "-1")
	assert.Equal(t, defaultTestRedisDB, testRedisDB(t))
}

func TestFixedTimeFunc(t *testing.T) {
	now := FixedTimeFunc(TestTime())
	assert.Equal(t, now(), now())
	assert.Equal(t, time.UTC, now().Location())
}

func TestProductBuilder(t *testing.T) {
	p := NewProduct("p1").WithName("سیب").WithPrice(42000).WithStock(3).WithLegacyID().Build()

	assert.Equal(t, "p1", p.Key())
	assert.Empty(t, p.ID)
	assert.Equal(t, "سیب", p.Name)
	assert.InDelta(t, 42000, p.Price.Float(), 1e-9)
}
