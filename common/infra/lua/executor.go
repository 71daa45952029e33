package lua

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

var ErrRepeatScript = errors.New("repeat script name")

type Executor struct {
	client redis.Scripter
	mu     sync.RWMutex
	sha    map[string]string
	script map[string]*Script
}

func NewExecutor(client redis.Scripter) *Executor {
	return &Executor{
		client: client,
		sha:    make(map[string]string),
		script: make(map[string]*Script),
	}
}

// Load 预加载脚本，返回出错脚本的序号(从1开始)，成功返回0
func (e *Executor) Load(ctx context.Context, scripts []*Script) (int, error) {
	for i, script := range scripts {
		e.mu.RLock()
		_, ok := e.sha[script.Name()]
		e.mu.RUnlock()
		if ok {
			return i + 1, ErrRepeatScript
		}
		if err := e.load(ctx, script); err != nil {
			return i + 1, err
		}
	}
	return 0, nil
}

func (e *Executor) load(ctx context.Context, script *Script) error {
	res, err := e.client.ScriptLoad(ctx, script.Function()).Result()
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.sha[script.Name()] = res
	e.script[script.Name()] = script
	e.mu.Unlock()
	return nil
}

// Execute redis重启或执行SCRIPT FLUSH后脚本缓存丢失，遇到NOSCRIPT时重新加载一次
func (e *Executor) Execute(ctx context.Context, script *Script, keys []string, args ...interface{}) *redis.Cmd {
	e.mu.RLock()
	sha, ok := e.sha[script.Name()]
	e.mu.RUnlock()
	if !ok {
		return e.client.Eval(ctx, script.Function(), keys, args...)
	}
	cmd := e.client.EvalSha(ctx, sha, keys, args...)
	if err := cmd.Err(); err != nil && strings.HasPrefix(err.Error(), "NOSCRIPT") {
		if err := e.load(ctx, script); err != nil {
			return cmd
		}
		e.mu.RLock()
		sha = e.sha[script.Name()]
		e.mu.RUnlock()
		return e.client.EvalSha(ctx, sha, keys, args...)
	}
	return cmd
}

// Names 已加载的脚本名
func (e *Executor) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.sha))
	for name := range e.sha {
		names = append(names, name)
	}
	return names
}
