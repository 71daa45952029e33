package hotkey

import (
	"time"

	"github.com/coocood/freecache"
)

func (op OptionFunc) Update(core *Core) {
	op(core)
}

// WithCacheSize 设置本地缓存的大小(byte)，默认值为64m
func WithCacheSize(size int) Option {
	return OptionFunc(func(core *Core) {
		core.cache = freecache.NewCache(size)
	})
}

// WithKeySize 设置热key集合的大小(byte)，默认值为8m
func WithKeySize(size int) Option {
	return OptionFunc(func(core *Core) {
		core.hotkeys = freecache.NewCache(size)
	})
}

// WithTTL 设置热key缓存时间(second)，默认值为5s
func WithTTL(ttl int) Option {
	if ttl <= 0 {
		panic("invalid ttl value")
	}
	return OptionFunc(func(core *Core) {
		core.ttl = ttl
	})
}

// WithWindow 设置热key探测窗口，默认1s窗口内访问20次为热key
func WithWindow(size int64, threshold int64) Option {
	if size <= 0 || threshold <= 0 {
		panic("invalid window value")
	}
	return OptionFunc(func(core *Core) {
		core.config.Size = size
		core.config.Threshold = threshold
	})
}

// WithTimeWait 设置重复判定的间隔，默认值为1s
func WithTimeWait(wait time.Duration) Option {
	return OptionFunc(func(core *Core) {
		core.config.TimeWait = wait
	})
}

// WithObserver 将观察者加入观察者列表，在key成为热key时通知观察者
func WithObserver(observers ...Observer) Option {
	return OptionFunc(func(core *Core) {
		core.observerList = append(core.observerList, observers...)
	})
}
