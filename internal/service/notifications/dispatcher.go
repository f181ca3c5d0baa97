package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

const (
	outcomeSent   = "sent"
	outcomeFailed = "failed"
)

// Dispatcher рассылает уведомления во все sink'и.
// Ошибки доставки логируются и никогда не возвращаются вызывающему.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	metrics Metrics
	logger  Logger

	inflight sync.WaitGroup
}

// NewDispatcher создает диспетчер уведомлений
func NewDispatcher(timeout time.Duration, metrics Metrics, logger Logger, sinks ...Sink) *Dispatcher {
	return &Dispatcher{
		sinks:   sinks,
		timeout: timeout,
		metrics: metrics,
		logger:  logger,
	}
}

// Dispatch отправляет уведомления параллельно и ждёт завершения всех отправок.
// Отправка идёт на контексте, отвязанном от отмены запроса, с собственным таймаутом,
// поэтому разрыв соединения клиентом не теряет уже начатые отправки.
func (d *Dispatcher) Dispatch(ctx context.Context, notes []domain.Notification) {
	if len(notes) == 0 || len(d.sinks) == 0 {
		return
	}

	detached := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	for _, n := range notes {
		for _, sink := range d.sinks {
			wg.Add(1)
			d.inflight.Add(1)
			go func(sink Sink, n domain.Notification) {
				defer d.inflight.Done()
				defer wg.Done()
				d.send(detached, sink, n)
			}(sink, n)
		}
	}
	wg.Wait()
}

// Wait ждёт завершения всех отправок (используется при остановке сервиса)
func (d *Dispatcher) Wait() {
	d.inflight.Wait()
}

func (d *Dispatcher) send(ctx context.Context, sink Sink, n domain.Notification) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Dispatch: notification sink panicked for booking=%d: %v", n.BookingID, r)
			d.metrics.IncNotification(string(n.Category), outcomeFailed)
		}
	}()

	if err := sink.Notify(ctx, n); err != nil {
		d.logger.Warn("Dispatch: failed to deliver %s notification for booking=%d: %v", n.Category, n.BookingID, err)
		d.metrics.IncNotification(string(n.Category), outcomeFailed)
		return
	}
	d.metrics.IncNotification(string(n.Category), outcomeSent)
}
