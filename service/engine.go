package service

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/izzydoesit/gemini-api/metrics"
	"github.com/izzydoesit/gemini-api/models"
)

// EngineSink receives admitted orders. The real matching engine lives behind
// this boundary; the gateway never reads execution state back.
type EngineSink interface {
	Submit(order *models.AcceptedOrder)
}

// NopSink discards admitted orders. Used in tests and when running without an
// engine attachment.
type NopSink struct{}

func (NopSink) Submit(*models.AcceptedOrder) {}

// EngineDispatcher allocates order IDs and hands admitted orders to the sink
// through a buffered queue. The accept path enqueues and returns; it never
// waits on execution.
type EngineDispatcher struct {
	sink   EngineSink
	logger *zap.Logger
	queue  chan *models.AcceptedOrder
	nextID atomic.Int64
	wg     sync.WaitGroup
	once   sync.Once
}

func NewEngineDispatcher(sink EngineSink, logger *zap.Logger) *EngineDispatcher {
	d := &EngineDispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan *models.AcceptedOrder, 1024),
	}
	// Millisecond seed keeps IDs increasing across restarts.
	d.nextID.Store(time.Now().UnixMilli())

	d.wg.Add(1)
	go d.run()
	return d
}

func (d *EngineDispatcher) run() {
	defer d.wg.Done()
	for order := range d.queue {
		d.sink.Submit(order)
		metrics.EngineQueueDepth.Set(float64(len(d.queue)))
	}
}

// NextOrderID returns a fresh, strictly increasing order ID.
func (d *EngineDispatcher) NextOrderID() int64 {
	return d.nextID.Add(1)
}

// Dispatch enqueues an admitted order for the engine. The send never blocks:
// when the queue is full the order is dropped from the handoff and logged.
// The caller has already accepted the order, so a drop costs the journal
// entry, not the acceptance.
func (d *EngineDispatcher) Dispatch(order *models.AcceptedOrder) {
	select {
	case d.queue <- order:
		metrics.EngineQueueDepth.Set(float64(len(d.queue)))
		d.logger.Info("order handed to engine",
			zap.Int64("order_id", order.OrderID),
			zap.String("symbol", order.Symbol),
			zap.String("side", order.Side),
		)
	default:
		metrics.EngineQueueDropped.Inc()
		d.logger.Warn("engine queue full, dropping handoff",
			zap.Int64("order_id", order.OrderID),
			zap.String("symbol", order.Symbol),
		)
	}
}

// Close drains the queue and stops the consumer. Safe to call more than once.
func (d *EngineDispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}
