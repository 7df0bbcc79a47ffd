// Package scheduler agenda o disparo automático do resumo semanal de vendas.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/summarizing"
)

// WeeklyReportSyncService enfileira periodicamente um resumo semanal para a
// sucursal configurada, como se o escritório central o tivesse solicitado.
type WeeklyReportSyncService struct {
	scheduler      *gocron.Scheduler
	config         config.WeeklyReportSync
	summaryService summarizing.SummaryService

	syncRunning       bool
	syncMutex         sync.Mutex
	lastSyncStartedAt time.Time
	lastRequestID     string
}

func NewWeeklyReportSyncService(
	summaryService summarizing.SummaryService,
	appConfig *config.Config,
) *WeeklyReportSyncService {
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": appConfig.WeeklyReportSync.CronSchedule,
		"sync_enabled":  appConfig.WeeklyReportSync.Enabled,
		"branch":        appConfig.WeeklyReportSync.Branch,
	}).Info("Configuração do agendador de resumo semanal carregada")

	return &WeeklyReportSyncService{
		scheduler:      scheduler,
		config:         appConfig.WeeklyReportSync,
		summaryService: summaryService,
	}
}

// Start inicia o agendador. Desabilitado por configuração, não faz nada.
func (s *WeeklyReportSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Disparo automático do resumo semanal desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do resumo semanal")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.requestWeeklyReport()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar o resumo semanal: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do resumo semanal")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *WeeklyReportSyncService) requestWeeklyReport() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Disparo do resumo semanal já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	if s.config.Branch == "" || s.config.EmailTo == "" {
		logrus.Warn("Sucursal ou destinatário do resumo semanal não configurados, ignorando disparo")
		return
	}

	// O disparo automático corre com a identidade do escritório central.
	principal := domain.Principal{
		Username: "scheduler",
		Email:    s.config.EmailTo,
		Role:     domain.RoleCentral,
	}

	response, err := s.summaryService.RequestWeeklySummary(&domain.WeeklySummaryRequest{
		Branch:  s.config.Branch,
		EmailTo: s.config.EmailTo,
	}, principal)
	if err != nil {
		logrus.WithError(err).Error("Erro ao solicitar o resumo semanal agendado")
		return
	}

	s.syncMutex.Lock()
	s.lastRequestID = response.RequestID
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"request_id": response.RequestID,
		"branch":     s.config.Branch,
	}).Info("Resumo semanal agendado solicitado")
}

// TriggerManualSync dispara o resumo semanal fora do horário agendado.
func (s *WeeklyReportSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Disparo do resumo semanal já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Disparo manual do resumo semanal")
	go s.requestWeeklyReport()
}

// GetStatus retorna o estado atual do agendador.
func (s *WeeklyReportSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":         s.config.Enabled,
		"sync_cron":            s.config.CronSchedule,
		"branch":               s.config.Branch,
		"sync_running":         s.syncRunning,
		"last_sync_started_at": s.lastSyncStartedAt,
		"last_request_id":      s.lastRequestID,
	}
}
