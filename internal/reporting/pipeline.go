package reporting

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

// Aggregator calcula os agregados do período solicitado.
type Aggregator interface {
	CalculateAggregates(from, to *time.Time, branch *string) (*domain.SalesAggregates, error)
}

// Summarizer produz o texto do resumo. Nunca retorna erro: em qualquer falha
// interna devolve um texto de contingência.
type Summarizer interface {
	GenerateSummary(ctx context.Context, aggregates *domain.SalesAggregates, branch string, from, to time.Time) string
}

// Mailer entrega o resumo ou a notificação de falha ao destinatário.
type Mailer interface {
	SendSummaryEmail(event domain.ReportRequestedEvent, aggregates *domain.SalesAggregates, summaryText string) error
	SendFailureNotification(event domain.ReportRequestedEvent, reason string) error
}

// Pipeline encadeia agregação, sumarização e entrega de um evento.
type Pipeline struct {
	aggregator Aggregator
	summarizer Summarizer
	mailer     Mailer
}

func NewPipeline(aggregator Aggregator, summarizer Summarizer, mailer Mailer) *Pipeline {
	return &Pipeline{
		aggregator: aggregator,
		summarizer: summarizer,
		mailer:     mailer,
	}
}

// Process gera e entrega o relatório. Qualquer falha de agregação ou entrega
// vira uma notificação de falha ao mesmo destinatário; se a própria
// notificação falhar, o erro é apenas registrado.
func (p *Pipeline) Process(ctx context.Context, event domain.ReportRequestedEvent) {
	logger := logrus.WithFields(logrus.Fields{
		"request_id": event.RequestID,
		"branch":     event.Branch,
	})
	logger.Info("Processando solicitação de resumo")

	if err := p.process(ctx, event); err != nil {
		logger.WithError(err).Error("Erro gerando o resumo")

		if notifyErr := p.mailer.SendFailureNotification(event, err.Error()); notifyErr != nil {
			logger.WithError(notifyErr).Error("Falha ao notificar o erro do relatório")
		}
	}
}

func (p *Pipeline) process(ctx context.Context, event domain.ReportRequestedEvent) error {
	// Sucursal vazia significa relatório consolidado de toda a rede.
	var branch *string
	if event.Branch != "" {
		branch = &event.Branch
	}

	aggregates, err := p.aggregator.CalculateAggregates(&event.From, &event.To, branch)
	if err != nil {
		return err
	}

	summaryText := p.summarizer.GenerateSummary(ctx, aggregates, event.Branch, event.From, event.To)

	return p.mailer.SendSummaryEmail(event, aggregates, summaryText)
}
