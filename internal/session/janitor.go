package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Sweeper is implemented by Store.
type Sweeper interface {
	Sweep(idle time.Duration) int
}

type JanitorConfig struct {
	IdleTTL  time.Duration // Sessions untouched for longer are dropped
	Interval time.Duration // How often to sweep
}

func DefaultJanitorConfig() JanitorConfig {
	return JanitorConfig{
		IdleTTL:  24 * time.Hour,
		Interval: 10 * time.Minute,
	}
}

// Janitor periodically evicts idle sessions in the background.
type Janitor struct {
	store        Sweeper
	idleTTL      time.Duration
	interval     time.Duration
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

func NewJanitor(store Sweeper, config JanitorConfig) *Janitor {
	ctx, cancel := context.WithCancel(context.Background())

	return &Janitor{
		store:    store,
		idleTTL:  config.IdleTTL,
		interval: config.Interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (j *Janitor) Start() {
	log.Info().
		Dur("idleTTL", j.idleTTL).
		Dur("interval", j.interval).
		Msg("Starting session janitor")

	j.wg.Add(1)
	go j.run()
}

func (j *Janitor) run() {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.ctx.Done():
			log.Debug().Msg("Session janitor stopped")
			return
		case <-ticker.C:
			if removed := j.store.Sweep(j.idleTTL); removed > 0 {
				log.Info().Int("sessions", removed).Msg("Evicted idle sessions")
			}
		}
	}
}

// Shutdown stops the janitor and waits up to timeout for it to exit.
func (j *Janitor) Shutdown(timeout time.Duration) error {
	var shutdownErr error

	j.shutdownOnce.Do(func() {
		j.cancel()

		done := make(chan struct{})
		go func() {
			j.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			log.Info().Msg("Session janitor shut down gracefully")
		case <-time.After(timeout):
			log.Warn().Msg("Session janitor shutdown timeout")
			shutdownErr = context.DeadlineExceeded
		}
	})

	return shutdownErr
}
