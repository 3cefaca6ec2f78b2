package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"storefront/internal/report"

	"github.com/redis/go-redis/v9"
)

// ReportCache keeps computed report results in Redis for a short TTL so dashboards
// polling the same window don't recompute. A nil client disables caching entirely;
// every other failure degrades to a miss, never to an error.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ReportCache{client: client, ttl: ttl}
}

// Key identifies one computation. Window bounds are part of the key so a moving
// "last 30 days" window naturally produces fresh entries as days roll over.
func Key(id string, w report.Window, f report.Filters) string {
	return fmt.Sprintf("report:%s:%d:%d:%s:%s",
		id, w.Since.Unix(), w.Until.Unix(), f.Status, f.Category)
}

func (c *ReportCache) Get(ctx context.Context, key string) (report.ReportResult, bool) {
	var res report.ReportResult
	if c == nil || c.client == nil {
		return res, false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("report cache get %s: %v", key, err)
		}
		return res, false
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		log.Printf("report cache decode %s: %v", key, err)
		return res, false
	}
	return res, true
}

func (c *ReportCache) Set(ctx context.Context, key string, res report.ReportResult) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		log.Printf("report cache encode %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("report cache set %s: %v", key, err)
	}
}

// InvalidateAll drops every cached report. Mutations call this through the services so
// open dashboards refetch fresh numbers after the websocket nudge.
func (c *ReportCache) InvalidateAll(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, "report:*", 200).Iterator()
	keys := make([]string, 0, 64)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("report cache scan: %v", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("report cache invalidate: %v", err)
	}
}
