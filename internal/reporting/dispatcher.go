// Package reporting executa o pipeline assíncrono de geração de relatórios:
// um canal interno com um pool fixo de workers consome os eventos publicados
// pelo orquestrador de resumos.
package reporting

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

var ErrQueueFull = errors.New("fila de relatórios cheia")
var ErrDispatcherClosed = errors.New("dispatcher de relatórios encerrado")

// Dispatcher é o ponto de entrada dos eventos de relatório. A fila é um canal
// em memória: sem durabilidade, entrega no máximo uma vez.
type Dispatcher struct {
	pipeline *Pipeline
	events   chan domain.ReportRequestedEvent
	workers  int

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(cfg config.ReportWorker, pipeline *Pipeline) *Dispatcher {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 2
	}

	return &Dispatcher{
		pipeline: pipeline,
		events:   make(chan domain.ReportRequestedEvent, queueSize),
		workers:  workers,
	}
}

// Publish enfileira o evento sem bloquear. Com a fila cheia o evento é
// descartado: o solicitante já recebeu a confirmação e não há reentrega.
func (d *Dispatcher) Publish(event domain.ReportRequestedEvent) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrDispatcherClosed
	}

	select {
	case d.events <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start inicia os workers. Eles drenam a fila até o canal ser fechado por
// Shutdown ou o contexto ser cancelado.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work(ctx, i)
	}

	logrus.WithFields(logrus.Fields{
		"workers":    d.workers,
		"queue_size": cap(d.events),
	}).Info("Pipeline de relatórios iniciado")
}

func (d *Dispatcher) work(ctx context.Context, worker int) {
	defer d.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-d.events:
			if !ok {
				return
			}

			logrus.WithFields(logrus.Fields{
				"request_id": event.RequestID,
				"worker":     worker,
			}).Debug("Evento de relatório recebido")

			d.pipeline.Process(ctx, event)
		}
	}
}

// Shutdown fecha a fila e aguarda os workers terminarem os eventos restantes.
func (d *Dispatcher) Shutdown() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.events)
	d.mu.Unlock()

	d.wg.Wait()
	logrus.Info("Pipeline de relatórios encerrado")
}
