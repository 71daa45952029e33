package hotkey

import "time"

func newWindow(cf *WindowConfig) *window {
	return &window{
		config:   cf,
		lastTime: time.Now().UnixMilli(),
		slots:    make([]int64, cf.Size),
	}
}

// add 记录times次访问，返回此次是否新判定为热key
func (w *window) add(times int64, now int64) bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	// 并发调用时now可能落后于lastTime
	if now < w.lastTime {
		now = w.lastTime
	}
	// 距离上次判定时间过短
	if w.lastSend != 0 && now-w.lastSend <= w.config.TimeWait.Milliseconds() {
		return false
	}
	// 访问间隔超过窗口长度，重置窗口
	if now-w.lastTime > w.config.Size*100 {
		clear(w.slots)
		w.lastIndex = 0
		w.lastTime = now
		w.slots[0] = times
		w.total = times
		return w.hit(now)
	}
	// 擦除过期的格
	for now/100 != w.lastTime/100 {
		w.lastTime += 100
		next := (w.lastIndex + 1) % int64(len(w.slots))
		w.total -= w.slots[next]
		w.slots[next] = 0
		w.lastIndex = next
	}
	w.lastTime = now
	w.total += times
	w.slots[w.lastIndex] += times
	return w.hit(now)
}

func (w *window) hit(now int64) bool {
	if w.total < w.config.Threshold {
		return false
	}
	w.lastSend = now
	return true
}

// timeout 长时间没有访问，可以回收
func (w *window) timeout(now int64) bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return now-w.lastTime >= w.config.Timeout.Milliseconds()
}
