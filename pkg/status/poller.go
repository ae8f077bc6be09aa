package status

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/armadakv/console-sub000/pkg/cluster"
	"github.com/armadakv/console-sub000/pkg/history"
	"github.com/armadakv/console-sub000/pkg/log"
)

// Poller periodically runs a status aggregation and records the result into
// the history store.
type Poller struct {
	registry   *cluster.Registry
	aggregator *Aggregator
	store      *history.Store
	interval   time.Duration
	clock      clock.Clock
	stopCh     chan struct{}
	wg         sync.WaitGroup
}

// NewPoller creates a poller. The clock is injectable for tests.
func NewPoller(registry *cluster.Registry, aggregator *Aggregator, store *history.Store, interval time.Duration) *Poller {
	return &Poller{
		registry:   registry,
		aggregator: aggregator,
		store:      store,
		interval:   interval,
		clock:      clock.New(),
		stopCh:     make(chan struct{}),
	}
}

// Start begins the background polling goroutine.
func (p *Poller) Start() {
	p.wg.Add(1)
	go p.loop()

	log.Info().Dur("interval", p.interval).Msg("Status poller started")
}

// Stop terminates the polling loop and waits for it to drain.
func (p *Poller) Stop() {
	close(p.stopCh)
	p.wg.Wait()
	log.Info().Msg("Status poller stopped")
}

func (p *Poller) loop() {
	defer p.wg.Done()

	ticker := p.clock.Ticker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.poll()
		}
	}
}

// poll runs one aggregation bounded by the poll interval. Failures are
// logged and skipped; the next tick tries again.
func (p *Poller) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()

	client, err := p.registry.Get(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Status poll skipped, cluster unreachable")
		return
	}

	aggregated, err := p.aggregator.Aggregate(ctx, client)
	if err != nil {
		log.Warn().Err(err).Msg("Status poll aggregation failed")
		return
	}

	if _, err := p.store.Record(aggregated.Servers); err != nil {
		log.Warn().Err(err).Msg("Failed to record status snapshot")
	}
}
