package domain

import "time"

// ReportRequestedEvent é a carga efêmera de uma solicitação de relatório.
// Existe apenas em trânsito entre o orquestrador e o pipeline assíncrono.
type ReportRequestedEvent struct {
	RequestID         string
	RequesterUsername string
	RequesterEmail    string
	RequesterRole     Role
	Branch            string
	From              time.Time
	To                time.Time
	EmailTo           string
	Premium           bool
	IncludeCharts     bool
	AttachPDF         bool
}

type WeeklySummaryRequest struct {
	From    *time.Time `json:"from"`
	To      *time.Time `json:"to"`
	Branch  string     `json:"branch"`
	EmailTo string     `json:"email_to"`
}

type PremiumSummaryRequest struct {
	From          *time.Time `json:"from"`
	To            *time.Time `json:"to"`
	Branch        string     `json:"branch"`
	EmailTo       string     `json:"email_to"`
	Format        string     `json:"format"`
	IncludeCharts bool       `json:"include_charts"`
	AttachPDF     bool       `json:"attach_pdf"`
}

// SalesSummaryResponse é a confirmação imediata devolvida ao solicitante,
// antes de qualquer processamento do relatório.
type SalesSummaryResponse struct {
	RequestID     string    `json:"request_id"`
	Status        string    `json:"status"`
	Message       string    `json:"message"`
	EstimatedTime string    `json:"estimated_time"`
	RequestedAt   time.Time `json:"requested_at"`
	Features      []string  `json:"features,omitempty"`
}
