// Package testutil provides shared helpers for tests: a disposable Redis
// database, fixed clocks and fixture builders.
package testutil

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// TestingTB is the subset of testing.TB the helpers need.
type TestingTB interface {
	Helper()
	Skip(args ...any)
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
	Cleanup(func())
}

const (
	defaultTestRedisDB = 9
	probeTimeout       = 2 * time.Second
)

// FixedTimeFunc returns a clock frozen at t.
func FixedTimeFunc(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// TestTime is the instant fixed clocks in this module default to.
func TestTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// redisCandidates lists addresses to probe: TEST_REDIS_ADDR wins outright,
// otherwise REDIS_ADDR then the compose service name then localhost.
func redisCandidates() []string {
	if addr := strings.TrimSpace(os.Getenv("TEST_REDIS_ADDR")); addr != "" {
		return []string{addr}
	}
	var out []string
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		out = append(out, addr)
	}
	return append(out, "redis:6379", "localhost:6379")
}

// testRedisDB reads TEST_REDIS_DB, defaulting to a database the app never uses.
func testRedisDB(t TestingTB) int {
	raw := os.Getenv("TEST_REDIS_DB")
	if raw == "" {
		return defaultTestRedisDB
	}
	db, err := strconv.Atoi(raw)
	if err != nil || db < 0 {
		t.Logf("ignoring TEST_REDIS_DB=%q", raw)
		return defaultTestRedisDB
	}
	return db
}

func probe(addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// SetupTestRedis returns a client on an emptied test database. The database is
// flushed again and the client closed when the test ends. Without a reachable
// server the test is skipped, or fails when TEST_REQUIRE_REDIS is set.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	db := testRedisDB(t)
	for _, addr := range redisCandidates() {
		client, err := probe(addr, db)
		if err != nil {
			t.Logf("redis unavailable at %s: %v", addr, err)
			continue
		}
		ctx := context.Background()
		client.FlushDB(ctx)
		t.Cleanup(func() {
			client.FlushDB(context.Background())
			_ = client.Close()
		})
		return client
	}

	if envBool("TEST_REQUIRE_REDIS") {
		t.Fatalf("redis required but none of %v answered", redisCandidates())
	}
	t.Skip("redis not available")
	return nil
}
