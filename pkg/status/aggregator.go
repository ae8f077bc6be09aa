// Package status builds the aggregated cluster health view: one entry per
// member, collected concurrently, tolerant of individual node failures.
package status

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"sync"
	"time"

	"github.com/armadakv/console-sub000/pkg/cluster"
	"github.com/armadakv/console-sub000/pkg/log"
	"github.com/armadakv/console-sub000/pkg/models"
)

// DefaultPerNodeTimeout bounds one member's status check so a single
// unreachable node cannot stall the whole aggregation.
const DefaultPerNodeTimeout = 5 * time.Second

// Aggregator fans a status check out across all cluster members and merges
// the results into one deterministic report.
type Aggregator struct {
	perNodeTimeout time.Duration
}

// NewAggregator creates an aggregator with the given per-member timeout.
// Non-positive values fall back to DefaultPerNodeTimeout.
func NewAggregator(perNodeTimeout time.Duration) *Aggregator {
	if perNodeTimeout <= 0 {
		perNodeTimeout = DefaultPerNodeTimeout
	}
	return &Aggregator{perNodeTimeout: perNodeTimeout}
}

// Aggregate queries every cluster member for its status, concurrently, and
// returns one entry per member sorted by name then id. A failing member
// degrades only its own entry; only a failure to enumerate members fails the
// whole operation. Cancelling ctx stops the fan-out; members not yet
// answered are reported as timed out.
func (a *Aggregator) Aggregate(ctx context.Context, client cluster.Client) (*models.AggregatedStatus, error) {
	start := time.Now()

	members, err := client.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	// One slot per member; each goroutine writes only its own index, so the
	// join preserves one result per input member without extra locking.
	servers := make([]models.NodeStatus, len(members))
	var waitGroup sync.WaitGroup
	for i, member := range members {
		waitGroup.Add(1)
		go func(i int, member models.Member) {
			defer waitGroup.Done()
			servers[i] = a.checkMember(ctx, client, member)
		}(i, member)
	}
	waitGroup.Wait()

	sort.Slice(servers, func(i, j int) bool {
		if servers[i].Name != servers[j].Name {
			return servers[i].Name < servers[j].Name
		}
		return servers[i].ID < servers[j].ID
	})

	aggregationDuration.Observe(time.Since(start).Seconds())
	return &models.AggregatedStatus{Servers: servers}, nil
}

func (a *Aggregator) checkMember(ctx context.Context, client cluster.Client, member models.Member) models.NodeStatus {
	entry := models.NodeStatus{ID: member.ID, Name: member.Name}

	// Parent already cancelled or expired: report without starting new work.
	if ctx.Err() != nil {
		memberChecks.WithLabelValues(resultTimeout).Inc()
		entry.State = models.StateError
		entry.Message = "timed out"
		return entry
	}

	checkCtx, cancel := context.WithTimeout(ctx, a.perNodeTimeout)
	defer cancel()

	nodeStatus, err := client.GetStatus(checkCtx, member.PrimaryAddress())
	if err != nil {
		log.Warn().
			Err(err).
			Str("member_id", member.ID).
			Str("member_name", member.Name).
			Str("address", member.PrimaryAddress()).
			Msg("Member status check failed")

		entry.State = models.StateError
		entry.Message = failureMessage(err)
		if entry.Message == "timed out" {
			memberChecks.WithLabelValues(resultTimeout).Inc()
		} else {
			memberChecks.WithLabelValues(resultError).Inc()
		}
		return entry
	}

	memberChecks.WithLabelValues(resultOK).Inc()
	entry.State = nodeStatus.State
	if entry.State == "" {
		entry.State = models.StateOK
	}
	entry.Message = nodeStatus.Message
	entry.Config = nodeStatus.Config
	entry.Tables = nodeStatus.Tables
	entry.Errors = nodeStatus.Errors
	return entry
}

// failureMessage turns a status-check error into the operator-facing message
// for the degraded entry.
func failureMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "timed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timed out"
	}
	return "failed to connect: " + err.Error()
}
