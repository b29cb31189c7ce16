// Package decay drains accumulated load from every center on a fixed
// interval, simulating work completion over time.
package decay

import (
	"context"
	"time"

	"github.com/jto5108/Community-Clinic-Load-Manager/center"
	"github.com/jto5108/Community-Clinic-Load-Manager/util/logger"
	"github.com/jto5108/Community-Clinic-Load-Manager/util/metrics"
)

// Engine periodically removes work from every registered center. The
// drain is capacity-proportional: a center of capacity N loses
// step*N/10 work units per tick, so larger facilities clear their
// backlog faster. Each center is drained under its own lock and
// independently of the others, so one center's state can never stall
// the sweep.
type Engine struct {
	registry *center.Registry
	step     float64
	interval time.Duration
	log      *logger.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewEngine returns an engine over the registry. step is the baseline
// work removed per tick for a capacity-10 center; interval is the time
// between ticks.
func NewEngine(registry *center.Registry, step float64, interval time.Duration) *Engine {
	return &Engine{
		registry: registry,
		step:     step,
		interval: interval,
		log:      logger.NewLogger("DecayEngine"),
	}
}

// Start launches the background sweep loop. The loop runs until the
// given context is cancelled or Stop is called.
func (e *Engine) Start(ctx context.Context) {
	ctx, e.cancel = context.WithCancel(ctx)
	e.done = make(chan struct{})

	e.log.Infof("starting load decay (step %.2f, interval %v)", e.step, e.interval)
	go e.loop(ctx)
}

// Stop cancels the sweep loop and waits for it to finish. Calling Stop
// on a never-started engine is a no-op.
func (e *Engine) Stop() {
	if e.cancel == nil {
		return
	}
	e.cancel()
	<-e.done
	e.log.Infof("load decay stopped")
}

func (e *Engine) loop(ctx context.Context) {
	defer close(e.done)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Tick()
		}
	}
}

// Tick performs one sweep over all centers. Exported so tests and
// callers can drive decay without the wall clock.
func (e *Engine) Tick() {
	for _, c := range e.registry.List() {
		effective := e.step * float64(c.Capacity) / 10
		if effective <= 0 {
			continue
		}
		load := c.Drain(effective)
		metrics.SetCenterLoad(c.ID, load)
	}
	metrics.RecordDecayTick()
}
