// Package llm gera o texto dos resumos de vendas via um serviço de
// chat-completion compatível com a API da OpenAI. Qualquer falha resulta no
// texto de contingência: o chamador nunca recebe erro.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

type Summarizer interface {
	GenerateSummary(ctx context.Context, aggregates *domain.SalesAggregates, branch string, from, to time.Time) string
}

type Client struct {
	httpClient *http.Client
	cfg        config.Llm
}

func NewClient(cfg config.Llm) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg: cfg,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateSummary pede ao modelo um resumo curto em espanhol. Sem token
// configurado, ou diante de qualquer erro de transporte ou resposta vazia,
// devolve o resumo de contingência.
func (c *Client) GenerateSummary(ctx context.Context, aggregates *domain.SalesAggregates, branch string, from, to time.Time) string {
	if strings.TrimSpace(c.cfg.Token) == "" {
		return fallbackSummary(aggregates, branch, from, to)
	}

	content, err := c.complete(ctx, buildPrompt(aggregates, branch, from, to))
	if err != nil {
		logrus.WithError(err).Warn("Falha ao invocar o serviço de sumarização")
		return fallbackSummary(aggregates, branch, from, to)
	}
	if strings.TrimSpace(content) == "" {
		return fallbackSummary(aggregates, branch, from, to)
	}

	return content
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	endpoint, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "/chat/completions")

	payload := chatRequest{
		Model: c.cfg.ModelID,
		Messages: []chatMessage{
			{Role: "system", Content: "Eres un analista que escribe resúmenes breves y claros para emails corporativos."},
			{Role: "user", Content: prompt},
		},
		MaxTokens: 200,
	}

	body, err := jsoniter.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	var response chatResponse
	if err := jsoniter.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", nil
	}

	return response.Choices[0].Message.Content, nil
}

func buildPrompt(aggregates *domain.SalesAggregates, branch string, from, to time.Time) string {
	topSKU := "N/A"
	if aggregates.TopSKU != nil {
		topSKU = *aggregates.TopSKU
	}
	topBranch := branch
	if aggregates.TopBranch != nil {
		topBranch = *aggregates.TopBranch
	}

	return fmt.Sprintf(
		"Con estos datos: totalUnits=%d, totalRevenue=%.2f, topSku=%s, topBranch=%s. Periodo: %s a %s. Devuelve un resumen ≤120 palabras para enviar por email en español.",
		aggregates.TotalUnits,
		aggregates.TotalRevenue,
		topSKU,
		topBranch,
		from.Format("2006-01-02"),
		to.Format("2006-01-02"),
	)
}

// fallbackSummary é o texto determinístico usado quando o modelo não pôde
// responder.
func fallbackSummary(aggregates *domain.SalesAggregates, branch string, from, to time.Time) string {
	var sb strings.Builder

	sb.WriteString("Resumen automático Oreo (fallback) del ")
	sb.WriteString(from.Format("2006-01-02"))
	sb.WriteString(" al ")
	sb.WriteString(to.Format("2006-01-02"))
	sb.WriteString(". ")

	if aggregates.TotalUnits > 0 {
		sb.WriteString(fmt.Sprintf("Se vendieron %d unidades, con ingresos de S/ %.2f. ", aggregates.TotalUnits, aggregates.TotalRevenue))
	} else {
		sb.WriteString("No se registraron ventas en el periodo. ")
	}

	if aggregates.TopSKU != nil {
		sb.WriteString("SKU destacado: ")
		sb.WriteString(*aggregates.TopSKU)
		sb.WriteString(". ")
	}

	if aggregates.TopBranch != nil {
		sb.WriteString("Sucursal líder: ")
		sb.WriteString(*aggregates.TopBranch)
		sb.WriteString(".")
	} else if branch != "" {
		sb.WriteString("Sucursal consultada: ")
		sb.WriteString(branch)
		sb.WriteString(".")
	}

	return sb.String()
}
