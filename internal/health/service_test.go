package health

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping() error { return f.err }

func TestCollect_AllUp(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	report := Collect(context.Background(), fakePinger{}, rdb)
	assert.Equal(t, "ok", report.Status)
	assert.Equal(t, "connected", report.Dependencies["database"].Status)
	assert.Equal(t, "connected", report.Dependencies["cache"].Status)
	require.NotNil(t, report.Dependencies["database"].PingMs)
}

func TestCollect_DatabaseDown(t *testing.T) {
	report := Collect(context.Background(), fakePinger{err: errors.New("refused")}, nil)
	assert.Equal(t, "unavailable", report.Status)
	assert.Equal(t, "error", report.Dependencies["database"].Status)
	assert.Equal(t, "disconnected", report.Dependencies["cache"].Status)
}

func TestCollect_CacheDownDegrades(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	report := Collect(context.Background(), fakePinger{}, rdb)
	assert.Equal(t, "degraded", report.Status)
	assert.Equal(t, "error", report.Dependencies["cache"].Status)
}
