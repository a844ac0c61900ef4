package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskmanagement/console/internal/api/metrics"
	"github.com/taskmanagement/console/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 64
	confirmTimeout = 10 * time.Second
)

// Dispatcher delivers logout confirmations to the remote API from a fixed set
// of workers. Confirmations for the same session always go to the same worker.
type Dispatcher struct {
	workers []chan ports.LogoutConfirmation
	gateway ports.AuthGateway
	log     zerolog.Logger
}

var _ ports.LogoutQueue = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, gateway ports.AuthGateway, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.LogoutConfirmation, numWorkers),
		gateway: gateway,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.LogoutConfirmation, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a confirmation to its worker without blocking. When the
// worker's buffer is full the confirmation is dropped; the session is already
// gone locally and the remote token expires on its own.
func (d *Dispatcher) Enqueue(c ports.LogoutConfirmation) {
	idx := d.shardIndex(c.SessionID)
	select {
	case d.workers[idx] <- c:
		metrics.LogoutQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.LogoutConfirmationsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Int64("user_id", c.UserID).Int("worker_id", idx).Msg("logout confirmation dropped, queue full")
	}
}

// shardIndex maps a session id deterministically to a worker index.
func (d *Dispatcher) shardIndex(sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.LogoutConfirmation) {
	depth := metrics.LogoutQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			d.confirm(ctx, id, c)
		}
	}
}

func (d *Dispatcher) confirm(ctx context.Context, worker int, c ports.LogoutConfirmation) {
	cctx, cancel := context.WithTimeout(ctx, confirmTimeout)
	defer cancel()

	if err := d.gateway.Logout(cctx, c.AccessToken); err != nil {
		metrics.LogoutConfirmationsTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Int64("user_id", c.UserID).
			Int("worker_id", worker).
			Msg("remote logout confirmation failed")
		return
	}
	metrics.LogoutConfirmationsTotal.WithLabelValues("sent").Inc()
}
