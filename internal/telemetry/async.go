package telemetry

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// emitTimeout bounds a single async emit.
const emitTimeout = 5 * time.Second

// ShutdownDrainDuration is the longest Drain should be given after gRPC GracefulStop, before the
// OTel providers shut down. It covers one full emitTimeout.
const ShutdownDrainDuration = emitTimeout

var inflight sync.WaitGroup

// EmitAsync emits event in a goroutine so the request path never waits on the broker. The emit
// runs on a fresh context bounded by emitTimeout, so request cancellation does not abort it.
// Failures are logged at warn. A nil emitter or event is a no-op.
func EmitAsync(emitter EventEmitter, event *Event, logger *zap.Logger) {
	if emitter == nil || event == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	inflight.Add(1)
	go func() {
		defer inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), emitTimeout)
		defer cancel()
		if err := emitter.Emit(ctx, event); err != nil {
			logger.Warn("telemetry: async emit failed",
				zap.String("event_type", event.EventType), zap.String("org_id", event.OrgID), zap.Error(err))
		}
	}()
}

// Drain waits until every emit started by EmitAsync has finished or timeout passes. It reports
// whether all emits finished.
func Drain(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
