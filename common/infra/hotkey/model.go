package hotkey

import (
	"sync"
	"time"

	"github.com/coocood/freecache"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// Observer 观察者模式，key成为热key时通知
type Observer interface {
	Do(key string)
}

// Option 函数选项模式
type Option interface {
	Update(core *Core)
}

type OptionFunc func(core *Core)

type WindowConfig struct {
	// 窗口格数，每格100ms
	Size int64
	// 窗口内访问次数达到该值时为热key
	Threshold int64
	// 成为热key后多久内不再重复通知
	TimeWait time.Duration
	// 多久没有访问后回收窗口
	Timeout time.Duration
}

// Core 本地热key探测+本地缓存，只缓存热key对应的value
type Core struct {
	// 本地缓存
	cache *freecache.Cache
	// hotkey集合
	hotkeys *freecache.Cache
	// hotkey缓存时间(second)
	ttl     int
	windows cmap.ConcurrentMap[string, *window]
	config  WindowConfig

	observerList []Observer
	stop         chan struct{}
	stopOnce     sync.Once
}

type window struct {
	config *WindowConfig
	mutex  sync.Mutex
	// 上次访问该key的时间戳(millisecond)
	lastTime int64
	// 上次访问所在的格
	lastIndex int64
	// 上次判定为热key的时间
	lastSend int64
	slots    []int64
	// 窗口内访问次数总数
	total int64
}
