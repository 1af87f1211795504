package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/maloquacious/apprater/internal/logger"
	"github.com/maloquacious/apprater/internal/store"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// testClient connects to APPRATER_TEST_REDIS_ADDR or skips.
func testClient(t *testing.T) *goredis.Client {
	t.Helper()
	addr := os.Getenv("APPRATER_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("APPRATER_TEST_REDIS_ADDR not set")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestKey(t *testing.T) {
	rdb := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	defer rdb.Close()

	if got := New(rdb, "ns", nil).Key(); got != "apprater:ns" {
		t.Errorf("got %q, want %q", got, "apprater:ns")
	}
	if got := New(rdb, "ns", nil, WithKeyPrefix("x/")).Key(); got != "x/ns" {
		t.Errorf("got %q, want %q", got, "x/ns")
	}
}

func TestUnreachableServerFallsBackToDefaults(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	s := New(rdb, "ns", logger.FromZap(zap.New(core)), WithTimeout(100*time.Millisecond))
	s.SetLaunchCount(5)
	if got := s.LaunchCount(); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
	if s.DoNotShowAgain() {
		t.Error("got true, want false")
	}
	if logs.Len() != 3 {
		t.Errorf("got %d error entries, want 3", logs.Len())
	}
}

func TestRoundTrip(t *testing.T) {
	rdb := testClient(t)
	s := New(rdb, "test-"+t.Name(), logger.Nop())
	t.Cleanup(func() { rdb.Del(context.Background(), s.Key()) })

	if s.FirstLaunchDate() != store.NotSet || s.LaunchCount() != 0 || s.DoNotShowAgain() {
		t.Fatal("expected empty record")
	}

	s.SetFirstLaunchDate(1_700_000_000_000)
	s.SetLaunchCount(9)
	s.SetDoNotShowAgain(true)

	reopened := New(rdb, "test-"+t.Name(), logger.Nop())
	if got := reopened.FirstLaunchDate(); got != 1_700_000_000_000 {
		t.Errorf("first launch: got %d", got)
	}
	if got := reopened.LaunchCount(); got != 9 {
		t.Errorf("launch count: got %d, want 9", got)
	}
	if !reopened.DoNotShowAgain() {
		t.Error("do not show again: got false, want true")
	}
}
