// Package mailer entrega os resumos de vendas e notificações de falha por
// email via SendGrid.
package mailer

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

type Mailer interface {
	SendSummaryEmail(event domain.ReportRequestedEvent, aggregates *domain.SalesAggregates, summaryText string) error
	SendFailureNotification(event domain.ReportRequestedEvent, reason string) error
}

type SendGridMailer struct {
	cfg  config.Mail
	send func(message *sgmail.SGMailV3) (int, string, error)
}

func NewSendGridMailer(cfg config.Mail) *SendGridMailer {
	client := sendgrid.NewSendClient(cfg.SendGridAPIKey)

	return &SendGridMailer{
		cfg: cfg,
		send: func(message *sgmail.SGMailV3) (int, string, error) {
			response, err := client.Send(message)
			if err != nil {
				return 0, "", err
			}
			return response.StatusCode, response.Body, nil
		},
	}
}

// SendSummaryEmail monta o corpo de acordo com o tipo do relatório: texto
// simples para o semanal, HTML estilizado para o premium.
func (m *SendGridMailer) SendSummaryEmail(event domain.ReportRequestedEvent, aggregates *domain.SalesAggregates, summaryText string) error {
	var message *sgmail.SGMailV3
	if event.Premium {
		message = m.newMessage(event.EmailTo, buildSubject(event), "", buildPremiumHTML(event, aggregates, summaryText))
	} else {
		message = m.newMessage(event.EmailTo, buildSubject(event), buildPlainBody(event, aggregates, summaryText), "")
	}

	if err := m.deliver(message); err != nil {
		return fmt.Errorf("erro ao enviar o email do resumo %s: %w", event.RequestID, err)
	}

	logrus.WithField("request_id", event.RequestID).Info("Email do resumo enviado")

	return nil
}

func (m *SendGridMailer) SendFailureNotification(event domain.ReportRequestedEvent, reason string) error {
	message := m.newMessage(event.EmailTo, "❌ Error en Reporte Semanal Oreo", buildFailureBody(event, reason), "")

	if err := m.deliver(message); err != nil {
		return fmt.Errorf("erro ao notificar a falha do resumo %s: %w", event.RequestID, err)
	}

	logrus.WithField("request_id", event.RequestID).Info("Notificação de falha enviada")

	return nil
}

func (m *SendGridMailer) newMessage(to, subject, plainText, html string) *sgmail.SGMailV3 {
	from := sgmail.NewEmail(m.cfg.FromName, m.cfg.FromEmail)
	toEmail := sgmail.NewEmail("", to)

	message := sgmail.NewV3Mail()
	message.SetFrom(from)
	message.Subject = subject

	personalization := sgmail.NewPersonalization()
	personalization.AddTos(toEmail)
	message.AddPersonalizations(personalization)

	if plainText != "" {
		message.AddContent(sgmail.NewContent("text/plain", plainText))
	}
	if html != "" {
		message.AddContent(sgmail.NewContent("text/html", html))
	}

	return message
}

func (m *SendGridMailer) deliver(message *sgmail.SGMailV3) error {
	if m.cfg.SendGridAPIKey == "" {
		return fmt.Errorf("chave de API do SendGrid ausente")
	}

	statusCode, body, err := m.send(message)
	if err != nil {
		return err
	}
	if statusCode >= 400 {
		return fmt.Errorf("envio recusado: status=%d body=%s", statusCode, body)
	}

	return nil
}

func buildSubject(event domain.ReportRequestedEvent) string {
	subject := fmt.Sprintf("🍪 Reporte Semanal Oreo - %s a %s",
		event.From.Format("2006-01-02"),
		event.To.Format("2006-01-02"),
	)

	if event.Premium {
		subject += " 📊 [PREMIUM]"
	}

	return subject
}

func buildPlainBody(event domain.ReportRequestedEvent, aggregates *domain.SalesAggregates, summaryText string) string {
	var body strings.Builder

	divider := strings.Repeat("=", 52)

	body.WriteString(summaryText)
	body.WriteString("\n\n")
	body.WriteString(divider)
	body.WriteString("\nDETALLES DEL REPORTE\n")
	body.WriteString(divider)
	body.WriteString("\n")
	body.WriteString(fmt.Sprintf("• Periodo: %s a %s\n", event.From.Format("2006-01-02"), event.To.Format("2006-01-02")))
	body.WriteString(fmt.Sprintf("• Sucursal: %s\n", event.Branch))
	body.WriteString(fmt.Sprintf("• Total unidades: %d\n", aggregates.TotalUnits))
	body.WriteString(fmt.Sprintf("• Total ingresos: S/ %.2f\n", aggregates.TotalRevenue))

	if aggregates.TopSKU != nil {
		body.WriteString(fmt.Sprintf("• SKU más vendido: %s\n", *aggregates.TopSKU))
	}
	if aggregates.TopBranch != nil && *aggregates.TopBranch != event.Branch {
		body.WriteString(fmt.Sprintf("• Sucursal top: %s\n", *aggregates.TopBranch))
	}

	body.WriteString("\n--\nSistema de Reportes Oreo Insight Factory")

	return body.String()
}

func buildFailureBody(event domain.ReportRequestedEvent, reason string) string {
	return "No fue posible generar el resumen solicitado.\n\n" +
		"Detalles:\n" +
		"• ID de solicitud: " + event.RequestID + "\n" +
		"• Periodo: " + event.From.Format("2006-01-02") + " a " + event.To.Format("2006-01-02") + "\n" +
		"• Sucursal: " + event.Branch + "\n" +
		"• Motivo del error: " + reason + "\n\n" +
		"Por favor, contacte al administrador del sistema.\n\n" +
		"--\nSistema de Reportes Oreo Insight Factory"
}
