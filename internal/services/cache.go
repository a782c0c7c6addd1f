package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"prepview/interview-engine/internal/models"
)

// ReportCache keeps finished reports and the dashboard aggregate in
// Redis so repeated reads skip the database. A nil ReportCache is
// accepted everywhere and disables caching.
type ReportCache interface {
	GetReport(ctx context.Context, sessionID string) (*models.ReportData, error)
	SetReport(ctx context.Context, sessionID string, report *models.ReportData) error
	GetStats(ctx context.Context) (*models.DashboardStats, error)
	SetStats(ctx context.Context, stats *models.DashboardStats) error
	InvalidateStats(ctx context.Context) error
	Close() error
}

type reportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReportCache(addr, password string, db int, ttl time.Duration) (ReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &reportCache{client: client, ttl: ttl}, nil
}

func (c *reportCache) Close() error {
	return c.client.Close()
}

func reportKey(sessionID string) string {
	return "report:" + sessionID
}

const statsKey = "dashboard:stats"

func (c *reportCache) GetReport(ctx context.Context, sessionID string) (*models.ReportData, error) {
	raw, err := c.client.Get(ctx, reportKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached report: %w", err)
	}

	var report models.ReportData
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &report, nil
}

func (c *reportCache) SetReport(ctx context.Context, sessionID string, report *models.ReportData) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := c.client.Set(ctx, reportKey(sessionID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

func (c *reportCache) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	raw, err := c.client.Get(ctx, statsKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached stats: %w", err)
	}

	var stats models.DashboardStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil, fmt.Errorf("failed to decode cached stats: %w", err)
	}
	return &stats, nil
}

func (c *reportCache) SetStats(ctx context.Context, stats *models.DashboardStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	if err := c.client.Set(ctx, statsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache stats: %w", err)
	}
	return nil
}

func (c *reportCache) InvalidateStats(ctx context.Context) error {
	return c.client.Del(ctx, statsKey).Err()
}
