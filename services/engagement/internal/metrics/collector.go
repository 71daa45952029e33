package metrics

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Collector 定时统计各表记录数
type Collector struct {
	DB       *gorm.DB
	Tables   []schema.Tabler
	Interval time.Duration
	Logger   *slog.Logger
}

func (c *Collector) Run(ctx context.Context) {
	interval := c.Interval
	if interval <= 0 {
		interval = 15 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Collect(ctx)
		}
	}
}

func (c *Collector) Collect(ctx context.Context) {
	for _, tabler := range c.Tables {
		var count int64
		err := c.DB.WithContext(ctx).Table(tabler.TableName()).Count(&count).Error
		if err != nil {
			c.Logger.Error("collect table count", "table", tabler.TableName(), "err", err.Error())
			continue
		}
		tableCount.WithLabelValues(tabler.TableName()).Set(float64(count))
	}
}
