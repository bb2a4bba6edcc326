package scheduler

import (
	"sync"
	"time"

	"github.com/LJTian/NewsHorizon/internal/logger"
	"github.com/robfig/cron/v3"
)

// Sweeper 清理过期条目，返回清理数量
type Sweeper interface {
	Sweep(now time.Time) int
}

// sizer 可选接口，实现后清理日志会带上剩余条目数
type sizer interface {
	Len() int
}

// Janitor 定时清理进程内缓存与会话，不做任何抓取
type Janitor struct {
	cron     *cron.Cron
	sweepers map[string]Sweeper
	log      logger.Logger
	now      func() time.Time

	mu      sync.Mutex
	running bool
}

func New(spec string, log logger.Logger) (*Janitor, error) {
	if log == nil {
		log = logger.NewNop()
	}
	c := cron.New()

	j := &Janitor{
		cron:     c,
		sweepers: make(map[string]Sweeper),
		log:      log,
		now:      time.Now,
	}

	_, err := c.AddFunc(spec, j.runOnce)
	if err != nil {
		return nil, err
	}

	return j, nil
}

// Register 需在 Start 之前调用
func (j *Janitor) Register(name string, s Sweeper) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.sweepers[name] = s
}

func (j *Janitor) Start() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.running {
		return
	}
	j.running = true
	j.cron.Start()
}

// Stop 等待正在执行的清理结束
func (j *Janitor) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	j.running = false
	j.mu.Unlock()

	<-j.cron.Stop().Done()
}

// RunOnce 对外暴露的单次执行入口，返回各 sweeper 的清理数量
func (j *Janitor) RunOnce() map[string]int {
	return j.sweep()
}

func (j *Janitor) runOnce() {
	j.sweep()
}

func (j *Janitor) sweep() map[string]int {
	j.mu.Lock()
	sweepers := make(map[string]Sweeper, len(j.sweepers))
	for name, s := range j.sweepers {
		sweepers[name] = s
	}
	j.mu.Unlock()

	now := j.now()
	removed := make(map[string]int, len(sweepers))
	for name, s := range sweepers {
		n := s.Sweep(now)
		removed[name] = n
		if n == 0 {
			continue
		}
		fields := []logger.Field{logger.String("sweeper", name), logger.Int("removed", n)}
		if sz, ok := s.(sizer); ok {
			fields = append(fields, logger.Int("remaining", sz.Len()))
		}
		j.log.Info("janitor swept expired entries", fields...)
	}
	return removed
}
