// Package summarizing valida e confirma solicitações de resumo de vendas,
// publicando o evento correspondente para processamento assíncrono.
package summarizing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/authorizing"
)

// Publisher entrega eventos de relatório ao pipeline assíncrono. A entrega é
// de melhor esforço: o solicitante já recebeu sua confirmação.
type Publisher interface {
	Publish(event domain.ReportRequestedEvent) error
}

type SummaryService interface {
	RequestWeeklySummary(request *domain.WeeklySummaryRequest, principal domain.Principal) (*domain.SalesSummaryResponse, error)
	RequestPremiumSummary(request *domain.PremiumSummaryRequest, principal domain.Principal) (*domain.SalesSummaryResponse, error)
}

type Service struct {
	publisher Publisher
	now       func() time.Time
}

func NewService(publisher Publisher) SummaryService {
	return &Service{
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *Service) RequestWeeklySummary(request *domain.WeeklySummaryRequest, principal domain.Principal) (*domain.SalesSummaryResponse, error) {
	if !authorizing.CanRequestReportForBranch(principal, request.Branch) {
		return nil, ErrReportForbidden
	}

	now := s.now()
	from, to := s.resolvePeriod(request.From, request.To, now)
	requestID := "req_" + uuid.NewString()

	s.publish(domain.ReportRequestedEvent{
		RequestID:         requestID,
		RequesterUsername: principal.Username,
		RequesterEmail:    principal.Email,
		RequesterRole:     principal.Role,
		Branch:            request.Branch,
		From:              from,
		To:                to,
		EmailTo:           request.EmailTo,
	})

	return &domain.SalesSummaryResponse{
		RequestID:     requestID,
		Status:        "PROCESSING",
		Message:       "Su solicitud de reporte está siendo procesada. Recibirá el resumen en " + request.EmailTo + " en unos momentos.",
		EstimatedTime: "30-60 segundos",
		RequestedAt:   now,
	}, nil
}

func (s *Service) RequestPremiumSummary(request *domain.PremiumSummaryRequest, principal domain.Principal) (*domain.SalesSummaryResponse, error) {
	if !authorizing.CanRequestReportForBranch(principal, request.Branch) {
		return nil, ErrReportForbidden
	}

	if !strings.EqualFold(request.Format, "PREMIUM") {
		return nil, ErrUnsupportedFormat
	}

	now := s.now()
	from, to := s.resolvePeriod(request.From, request.To, now)
	requestID := "req_premium_" + uuid.NewString()

	s.publish(domain.ReportRequestedEvent{
		RequestID:         requestID,
		RequesterUsername: principal.Username,
		RequesterEmail:    principal.Email,
		RequesterRole:     principal.Role,
		Branch:            request.Branch,
		From:              from,
		To:                to,
		EmailTo:           request.EmailTo,
		Premium:           true,
		IncludeCharts:     request.IncludeCharts,
		AttachPDF:         request.AttachPDF,
	})

	features := []string{"HTML_FORMAT"}
	if request.IncludeCharts {
		features = append(features, "CHARTS")
	}
	if request.AttachPDF {
		features = append(features, "PDF_ATTACHMENT")
	}

	return &domain.SalesSummaryResponse{
		RequestID:     requestID,
		Status:        "PROCESSING",
		Message:       "Su reporte premium está siendo generado. Incluirá gráficos y PDF adjunto.",
		EstimatedTime: "60-90 segundos",
		RequestedAt:   now,
		Features:      features,
	}, nil
}

// resolvePeriod aplica a janela padrão de 7 dias terminando hoje quando as
// datas não foram informadas.
func (s *Service) resolvePeriod(from, to *time.Time, now time.Time) (time.Time, time.Time) {
	start := domain.StartOfDay(now.AddDate(0, 0, -6))
	if from != nil {
		start = domain.StartOfDay(*from)
	}

	end := domain.EndOfDay(now)
	if to != nil {
		end = domain.EndOfDay(*to)
	}

	return start, end
}

func (s *Service) publish(event domain.ReportRequestedEvent) {
	if err := s.publisher.Publish(event); err != nil {
		logrus.WithFields(logrus.Fields{
			"request_id": event.RequestID,
			"branch":     event.Branch,
		}).WithError(err).Error("Falha ao enfileirar o evento de relatório")
	}
}
