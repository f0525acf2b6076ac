// Package scheduler debounces and deduplicates church aggregate
// recalculations so rapid-fire rating writes do not hammer the store.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/misioncampo/visitas-api/consts"
	"github.com/misioncampo/visitas-api/schema"
)

const logPrefix = "scheduler"

// Recalculator is the slice of the aggregator the scheduler drives.
type Recalculator interface {
	Recalculate(churchID string) (*schema.ChurchRatingSummary, error)
}

// AuditWriter records executed recalculations. Optional: a nil writer
// disables audit logging.
type AuditWriter interface {
	AppendActivityEntry(churchID, actorID, text string) error
}

type churchState int

const (
	statePending churchState = iota + 1
	stateExecuting
)

type entry struct {
	state churchState
	timer *time.Timer
	req   schema.RecalculationRequest
	// rearm marks a request that arrived mid-execution; the church gets one
	// more debounced pass after the running one completes
	rearm    bool
	rearmReq schema.RecalculationRequest
}

// Scheduler owns the per-church debounce state machine: Idle -> Pending ->
// Executing -> Idle. Requests for a church already Pending are dropped; the
// scheduled pass reads the full current rating set when it runs, so nothing
// is lost. Execution failures are logged and swallowed, never propagated to
// the business operation that triggered the request.
type Scheduler struct {
	mu       sync.Mutex
	churches map[string]*entry

	recalc   Recalculator
	audit    AuditWriter
	debounce time.Duration
}

func New(recalc Recalculator, audit AuditWriter, debounce time.Duration) *Scheduler {
	if debounce <= 0 {
		debounce = consts.DefaultRecalculationDebounce
	}
	return &Scheduler{
		churches: map[string]*entry{},
		recalc:   recalc,
		audit:    audit,
		debounce: debounce,
	}
}

// RequestRecalculation marks a church's aggregate stale and returns
// immediately. The recalculation runs after the debounce window.
func (s *Scheduler) RequestRecalculation(req schema.RecalculationRequest) {
	if req.ChurchID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.churches[req.ChurchID]; ok {
		switch e.state {
		case statePending:
			// deduplicated: the pending pass will see the new data anyway
		case stateExecuting:
			e.rearm = true
			e.rearmReq = req
		}
		return
	}

	e := &entry{state: statePending, req: req}
	e.timer = time.AfterFunc(s.debounce, func() {
		s.execute(req.ChurchID)
	})
	s.churches[req.ChurchID] = e
}

// IsPending reports whether a debounced recalculation is waiting to run for
// the church.
func (s *Scheduler) IsPending(churchID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.churches[churchID]
	return ok && e.state == statePending
}

// PendingCount returns the number of churches with a recalculation waiting.
func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, e := range s.churches {
		if e.state == statePending {
			count++
		}
	}
	return count
}

// CancelAll drops every pending timer. It cannot interrupt a recalculation
// that is already executing. Administrative use only.
func (s *Scheduler) CancelAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cancelled := 0
	for churchID, e := range s.churches {
		if e.state != statePending {
			e.rearm = false
			continue
		}
		e.timer.Stop()
		delete(s.churches, churchID)
		cancelled++
	}

	log.WithFields(log.Fields{
		"prefix":    logPrefix,
		"cancelled": cancelled,
	}).Warn("all pending recalculations cancelled")

	return cancelled
}

func (s *Scheduler) execute(churchID string) {
	s.mu.Lock()
	e, ok := s.churches[churchID]
	if !ok || e.state != statePending {
		s.mu.Unlock()
		return
	}
	e.state = stateExecuting
	req := e.req
	s.mu.Unlock()

	if _, err := s.recalc.Recalculate(churchID); err != nil {
		// the triggering operation already succeeded; a failed refresh must
		// not fail it retroactively
		log.WithFields(log.Fields{
			"prefix":    logPrefix,
			"church ID": churchID,
			"trigger":   req.Trigger,
			"error":     err,
		}).Error("scheduled recalculation failed")
	} else if s.audit != nil && req.Reason != "" {
		if err := s.audit.AppendActivityEntry(churchID, req.ActorID, req.Reason); err != nil {
			log.WithFields(log.Fields{
				"prefix":    logPrefix,
				"church ID": churchID,
				"error":     err,
			}).Warn("fail to write recalculation audit entry")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e.rearm {
		e.rearm = false
		e.state = statePending
		e.req = e.rearmReq
		e.timer = time.AfterFunc(s.debounce, func() {
			s.execute(churchID)
		})
		return
	}
	delete(s.churches, churchID)
}

// BatchRecalculate synchronously rebuilds the aggregates of many churches,
// in small throttled groups so an administrative bulk run does not saturate
// the store. Per-church failures are collected and never halt the batch.
func (s *Scheduler) BatchRecalculate(churchIDs []string, actorID string, priority schema.RecalculationPriority) schema.BatchRecalculationResult {
	groupSize, groupDelay := batchCadence(priority)

	var result schema.BatchRecalculationResult
	var resultMu sync.Mutex

	for start := 0; start < len(churchIDs); start += groupSize {
		if start > 0 {
			time.Sleep(groupDelay)
		}

		end := start + groupSize
		if end > len(churchIDs) {
			end = len(churchIDs)
		}

		var wg sync.WaitGroup
		for _, churchID := range churchIDs[start:end] {
			wg.Add(1)
			go func(churchID string) {
				defer wg.Done()
				_, err := s.recalc.Recalculate(churchID)

				resultMu.Lock()
				defer resultMu.Unlock()
				if err != nil {
					result.Failed++
					result.Errors = append(result.Errors, schema.BatchRecalculationError{
						ChurchID: churchID,
						Error:    err.Error(),
					})
					return
				}
				result.Succeeded++
			}(churchID)
		}
		wg.Wait()
	}

	if s.audit != nil && len(churchIDs) > 0 {
		text := fmt.Sprintf("batch recalculation of %d churches (%d failed, priority %s)",
			len(churchIDs), result.Failed, priority)
		if err := s.audit.AppendActivityEntry("", actorID, text); err != nil {
			log.WithFields(log.Fields{
				"prefix": logPrefix,
				"error":  err,
			}).Warn("fail to write batch audit entry")
		}
	}

	return result
}

func batchCadence(priority schema.RecalculationPriority) (int, time.Duration) {
	switch priority {
	case schema.RecalculationPriorityHigh:
		return consts.BatchGroupSizeHigh, consts.BatchGroupDelayHigh
	case schema.RecalculationPriorityLow:
		return consts.BatchGroupSizeLow, consts.BatchGroupDelayLow
	default:
		return consts.BatchGroupSizeNormal, consts.BatchGroupDelayNormal
	}
}
