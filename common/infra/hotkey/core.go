package hotkey

import (
	"time"

	"github.com/coocood/freecache"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// NewCore 使用With...来更改默认值
func NewCore(options ...Option) *Core {
	c := &Core{
		cache:   freecache.NewCache(1024 * 1024 * 64),
		hotkeys: freecache.NewCache(1024 * 1024 * 8),
		ttl:     5,
		windows: cmap.New[*window](),
		config: WindowConfig{
			Size:      10,
			Threshold: 20,
			TimeWait:  time.Second,
			Timeout:   time.Minute,
		},
		observerList: make([]Observer, 0),
		stop:         make(chan struct{}),
	}
	for _, option := range options {
		option.Update(c)
	}
	go c.checkWindow()
	return c
}

// Get 从本地缓存中获取value，视为一次对key的访问
func (c *Core) Get(key string) ([]byte, bool) {
	c.access(key)
	res, err := c.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return res, true
}

// Set 将kv添加到本地缓存，ttl单位为秒
func (c *Core) Set(key string, value []byte, ttl int) bool {
	return c.cache.Set([]byte(key), value, ttl) == nil
}

// Del 将kv从本地缓存中移除
func (c *Core) Del(key string) bool {
	return c.cache.Del([]byte(key))
}

// IsHotKey 判断一个key是否为热key，不计入访问
func (c *Core) IsHotKey(key string) bool {
	_, err := c.hotkeys.Get([]byte(key))
	return err == nil
}

// TTL 热key的本地缓存时间(second)
func (c *Core) TTL() int {
	return c.ttl
}

func (c *Core) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Core) access(key string) {
	w := c.windows.Upsert(key, nil, func(exist bool, old *window, _ *window) *window {
		if exist {
			return old
		}
		return newWindow(&c.config)
	})
	if w.add(1, time.Now().UnixMilli()) {
		c.notify(key)
		_ = c.hotkeys.Set([]byte(key), []byte{}, c.ttl)
	}
}

func (c *Core) notify(key string) {
	for _, ob := range c.observerList {
		ob.Do(key)
	}
}

// checkWindow 回收长时间未访问的窗口
func (c *Core) checkWindow() {
	ticker := time.NewTicker(time.Second * 5)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now().UnixMilli()
			for key, w := range c.windows.Items() {
				if w.timeout(now) {
					c.windows.Remove(key)
				}
			}
		}
	}
}
