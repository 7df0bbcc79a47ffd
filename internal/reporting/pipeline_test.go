package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	repomocks "github.com/vfg2006/sales-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/internal/reporting/mocks"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/aggregating"
	"go.uber.org/mock/gomock"
)

func sampleEvent() domain.ReportRequestedEvent {
	return domain.ReportRequestedEvent{
		RequestID:         "req_123",
		RequesterUsername: "mira",
		RequesterEmail:    "mira@sales-tracker.local",
		RequesterRole:     domain.RoleBranch,
		Branch:            "Miraflores",
		From:              time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC),
		To:                time.Date(2026, 8, 20, 23, 59, 59, 999_000_000, time.UTC),
		EmailTo:           "destino@sales-tracker.local",
	}
}

func TestPipeline_Process(t *testing.T) {
	aggregates := &domain.SalesAggregates{TotalUnits: 30, TotalRevenue: 62.2}

	tests := []struct {
		name  string
		setup func(aggregator *mocks.MockAggregator, summarizer *mocks.MockSummarizer, mailer *mocks.MockMailer)
	}{
		{
			name: "caminho feliz agrega, sumariza e entrega",
			setup: func(aggregator *mocks.MockAggregator, summarizer *mocks.MockSummarizer, mailer *mocks.MockMailer) {
				aggregator.EXPECT().
					CalculateAggregates(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(aggregates, nil)
				summarizer.EXPECT().
					GenerateSummary(gomock.Any(), aggregates, "Miraflores", gomock.Any(), gomock.Any()).
					Return("resumo")
				mailer.EXPECT().
					SendSummaryEmail(gomock.Any(), aggregates, "resumo").
					Return(nil)
			},
		},
		{
			name: "falha na agregação vira notificação de falha",
			setup: func(aggregator *mocks.MockAggregator, summarizer *mocks.MockSummarizer, mailer *mocks.MockMailer) {
				aggregator.EXPECT().
					CalculateAggregates(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("banco indisponível"))
				mailer.EXPECT().
					SendFailureNotification(gomock.Any(), "banco indisponível").
					Return(nil)
			},
		},
		{
			name: "falha na entrega vira notificação de falha",
			setup: func(aggregator *mocks.MockAggregator, summarizer *mocks.MockSummarizer, mailer *mocks.MockMailer) {
				aggregator.EXPECT().
					CalculateAggregates(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(aggregates, nil)
				summarizer.EXPECT().
					GenerateSummary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("resumo")
				mailer.EXPECT().
					SendSummaryEmail(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("smtp fora do ar"))
				mailer.EXPECT().
					SendFailureNotification(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "falha na própria notificação é apenas registrada",
			setup: func(aggregator *mocks.MockAggregator, summarizer *mocks.MockSummarizer, mailer *mocks.MockMailer) {
				aggregator.EXPECT().
					CalculateAggregates(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("banco indisponível"))
				mailer.EXPECT().
					SendFailureNotification(gomock.Any(), gomock.Any()).
					Return(errors.New("smtp fora do ar"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			aggregator := mocks.NewMockAggregator(ctrl)
			summarizer := mocks.NewMockSummarizer(ctrl)
			mailer := mocks.NewMockMailer(ctrl)
			tt.setup(aggregator, summarizer, mailer)

			pipeline := NewPipeline(aggregator, summarizer, mailer)

			// Não deve entrar em pânico nem propagar erro algum
			pipeline.Process(context.Background(), sampleEvent())
		})
	}
}

// Sem sucursal no evento o relatório cobre a rede inteira, não o filtro vazio.
func TestPipeline_ProcessWithoutBranchFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	saleRepo := repomocks.NewMockSaleRepository(ctrl)
	saleRepo.EXPECT().
		FindByDateRange(gomock.Any(), gomock.Any()).
		Return([]*domain.Sale{
			{ID: "s1", SKU: "OREO-CLASSIC", Units: 10, Price: 1.99, Branch: "Miraflores"},
			{ID: "s2", SKU: "OREO-GOLDEN", Units: 5, Price: 2.49, Branch: "San Isidro"},
		}, nil)

	summarizer := mocks.NewMockSummarizer(ctrl)
	summarizer.EXPECT().
		GenerateSummary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("resumo")

	mailer := mocks.NewMockMailer(ctrl)
	mailer.EXPECT().
		SendSummaryEmail(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ domain.ReportRequestedEvent, aggregates *domain.SalesAggregates, _ string) error {
			if aggregates.TotalUnits != 15 {
				t.Errorf("esperava 15 unidades na rede inteira, obteve %d", aggregates.TotalUnits)
			}
			if aggregates.TotalRevenue != 32.35 {
				t.Errorf("esperava receita 32.35, obteve %.2f", aggregates.TotalRevenue)
			}
			return nil
		})

	event := sampleEvent()
	event.Branch = ""

	pipeline := NewPipeline(aggregating.NewService(saleRepo), summarizer, mailer)
	pipeline.Process(context.Background(), event)
}

func TestDispatcher_PublishAndDrain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aggregator := mocks.NewMockAggregator(ctrl)
	summarizer := mocks.NewMockSummarizer(ctrl)
	mailer := mocks.NewMockMailer(ctrl)

	aggregates := &domain.SalesAggregates{TotalUnits: 1, TotalRevenue: 1.99}
	aggregator.EXPECT().
		CalculateAggregates(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(aggregates, nil)
	summarizer.EXPECT().
		GenerateSummary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("resumo")

	delivered := make(chan struct{})
	mailer.EXPECT().
		SendSummaryEmail(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(domain.ReportRequestedEvent, *domain.SalesAggregates, string) error {
			close(delivered)
			return nil
		})

	dispatcher := NewDispatcher(config.ReportWorker{QueueSize: 4, Workers: 1}, NewPipeline(aggregator, summarizer, mailer))
	dispatcher.Start(context.Background())
	defer dispatcher.Shutdown()

	if err := dispatcher.Publish(sampleEvent()); err != nil {
		t.Fatalf("Publish devolveu erro inesperado: %v", err)
	}

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("o evento não foi processado dentro do prazo")
	}
}

func TestDispatcher_QueueFull(t *testing.T) {
	dispatcher := NewDispatcher(config.ReportWorker{QueueSize: 1, Workers: 1}, NewPipeline(nil, nil, nil))
	// Workers não iniciados: o primeiro evento ocupa a fila, o segundo é descartado

	if err := dispatcher.Publish(sampleEvent()); err != nil {
		t.Fatalf("Publish devolveu erro inesperado: %v", err)
	}

	err := dispatcher.Publish(sampleEvent())
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("esperava ErrQueueFull, obteve %v", err)
	}
}

func TestDispatcher_Closed(t *testing.T) {
	dispatcher := NewDispatcher(config.ReportWorker{QueueSize: 1, Workers: 1}, NewPipeline(nil, nil, nil))
	dispatcher.Shutdown()

	err := dispatcher.Publish(sampleEvent())
	if !errors.Is(err, ErrDispatcherClosed) {
		t.Fatalf("esperava ErrDispatcherClosed, obteve %v", err)
	}
}
