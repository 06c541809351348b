package health

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DBPinger is optional. A nil pinger reports the database as disconnected.
type DBPinger interface {
	Ping() error
}

type Report struct {
	Status        string               `json:"status"`
	UptimeSeconds int64                `json:"uptime_seconds"`
	Dependencies  map[string]DepStatus `json:"dependencies"`
}

type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"ping_ms"`
}

var startedAt = time.Now()

// Collect probes the database and cache. The overall status is "ok" only
// when the database answers; the cache is optional and can only degrade.
func Collect(ctx context.Context, db DBPinger, rdb *redis.Client) Report {
	report := Report{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(startedAt).Seconds()),
		Dependencies:  make(map[string]DepStatus),
	}

	report.Dependencies["database"] = probe(db != nil, func() error { return db.Ping() })
	if report.Dependencies["database"].Status != "connected" {
		report.Status = "unavailable"
	}

	report.Dependencies["cache"] = probe(rdb != nil, func() error { return rdb.Ping(ctx).Err() })
	if report.Status == "ok" && report.Dependencies["cache"].Status == "error" {
		report.Status = "degraded"
	}

	return report
}

func probe(configured bool, ping func() error) DepStatus {
	if !configured {
		return DepStatus{Status: "disconnected"}
	}
	start := time.Now()
	if err := ping(); err != nil {
		return DepStatus{Status: "error"}
	}
	ms := time.Since(start).Milliseconds()
	return DepStatus{Status: "connected", PingMs: &ms}
}
