package segment

import (
	"context"
	"time"

	"gorm.io/gorm"
)

func (c *Creator) GetId() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 当前号段耗尽
	if c.old.nextId > c.old.maxId {
		// 新号段还未申请到，直接返回避免长时间阻塞
		if c.new == nil {
			return 0, false
		}
		c.old = c.new
		c.new = nil
	}
	// 达到预申请阈值
	if c.old.nextId == c.old.preIndex {
		select {
		case c.ch <- struct{}{}:
		default:
		}
	}
	res := c.old.nextId
	c.old.nextId++
	return res, true
}

func (c *Creator) GetIdWithContext(ctx context.Context) (int64, error) {
	for {
		if id, ok := c.GetId(); ok {
			return id, nil
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(time.Millisecond * 50):
		}
	}
}

func (c *Creator) GetIdWithTimeout(timeout time.Duration) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return c.GetIdWithContext(ctx)
}

// preApplication 向数据库预申请号段
func (c *Creator) preApplication() {
	for range c.ch {
		for c.tryApplication() != nil {
			time.Sleep(time.Millisecond * 100)
		}
	}
}

func (c *Creator) tryApplication() error {
	timeout, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	record := IdTable{}
	err := c.db.WithContext(timeout).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&IdTable{}).Where("id = ?", c.id).
			Update("max_id", gorm.Expr("max_id + step")).Error; err != nil {
			return err
		}
		return tx.First(&record, c.id).Error
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.new = newBuffer(record)
	c.mu.Unlock()
	return nil
}
