package animation

import (
	"context"
	"sync"
	"time"
)

// Config contains animation timing values.
type Config struct {
	FrameInterval time.Duration
}

// Engine drives a single level animation at a time. Starting a new one
// cancels the previous run.
type Engine struct {
	mu     sync.Mutex
	config Config
	update func(float64)
	cancel context.CancelFunc
	level  float64
}

// New creates a new animation engine. update receives every frame level from
// the animation goroutine.
func New(config Config, update func(float64)) *Engine {
	if config.FrameInterval <= 0 {
		config.FrameInterval = DefaultConfig().FrameInterval
	}
	return &Engine{
		config: config,
		update: update,
	}
}

// Play animates sweep until it ends or ctx is cancelled.
func (engine *Engine) Play(ctx context.Context, sweep Sweep) {
	engine.start(ctx, func(runCtx context.Context) {
		started := time.Now()
		if !engine.setActive(runCtx, sweep.From) {
			return
		}
		for {
			if !sleepWithContext(runCtx, engine.config.FrameInterval) {
				return
			}
			elapsed := time.Since(started)
			if !engine.setActive(runCtx, sweep.At(elapsed)) || elapsed >= sweep.Duration {
				return
			}
		}
	})
}

// Run calls step once per frame with the time since the previous frame until
// step returns false or ctx is cancelled.
func (engine *Engine) Run(ctx context.Context, step func(delta time.Duration) bool) {
	engine.start(ctx, func(runCtx context.Context) {
		last := time.Now()
		for {
			if !sleepWithContext(runCtx, engine.config.FrameInterval) {
				return
			}
			now := time.Now()
			delta := now.Sub(last)
			last = now
			if !step(delta) {
				return
			}
		}
	})
}

// Hold stops any active animation and shows level.
func (engine *Engine) Hold(level float64) {
	engine.Stop()
	engine.set(level)
}

// Stop terminates any active animation.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

// Level returns the last level shown.
func (engine *Engine) Level() float64 {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.level
}

func (engine *Engine) set(level float64) {
	engine.mu.Lock()
	engine.level = level
	update := engine.update
	engine.mu.Unlock()
	if update != nil {
		update(level)
	}
}

// setActive applies level unless ctx was cancelled first.
func (engine *Engine) setActive(ctx context.Context, level float64) bool {
	engine.mu.Lock()
	if ctx.Err() != nil {
		engine.mu.Unlock()
		return false
	}
	engine.level = level
	update := engine.update
	engine.mu.Unlock()
	if update != nil {
		update(level)
	}
	return true
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.mu.Unlock()

	go run(runCtx)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
