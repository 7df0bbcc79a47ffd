package mailer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

// buildPremiumHTML gera o corpo HTML do relatório premium, com os cartões de
// métricas e, quando solicitado, o gráfico renderizado pelo quickchart.io.
func buildPremiumHTML(event domain.ReportRequestedEvent, aggregates *domain.SalesAggregates, summaryText string) string {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>")
	sb.WriteString("<html lang='es'>")
	sb.WriteString("<head>")
	sb.WriteString("<meta charset='UTF-8'>")
	sb.WriteString("<meta name='viewport' content='width=device-width, initial-scale=1.0'>")
	sb.WriteString("<title>Reporte Oreo</title>")
	sb.WriteString("<style>")
	sb.WriteString("body { font-family: 'Segoe UI', Arial, sans-serif; margin: 0; padding: 20px; background: #f8fafc; color: #1e293b; }")
	sb.WriteString(".container { max-width: 800px; margin: 0 auto; background: white; border-radius: 12px; box-shadow: 0 4px 6px -1px rgba(0,0,0,0.1); overflow: hidden; }")
	sb.WriteString(".header { background: linear-gradient(135deg, #6B46C1, #805AD5); color: white; padding: 30px; text-align: center; }")
	sb.WriteString(".header h1 { margin: 0; font-size: 28px; }")
	sb.WriteString(".header p { margin: 8px 0 0; opacity: 0.9; }")
	sb.WriteString(".content { padding: 30px; }")
	sb.WriteString(".summary { background: #f1f5f9; padding: 20px; border-radius: 8px; margin-bottom: 25px; line-height: 1.6; }")
	sb.WriteString(".metrics { display: grid; grid-template-columns: repeat(auto-fit, minmax(150px, 1fr)); gap: 15px; margin: 25px 0; }")
	sb.WriteString(".metric { background: #f8fafc; padding: 20px; border-radius: 8px; border-left: 4px solid #6B46C1; text-align: center; }")
	sb.WriteString(".metric h3 { margin: 0 0 8px; font-size: 14px; color: #64748b; text-transform: uppercase; letter-spacing: 0.5px; }")
	sb.WriteString(".metric p { margin: 0; font-size: 24px; font-weight: bold; color: #1e293b; }")
	sb.WriteString(".chart-container { margin: 30px 0; text-align: center; }")
	sb.WriteString(".footer { background: #f1f5f9; padding: 20px; text-align: center; color: #64748b; font-size: 14px; }")
	sb.WriteString(".premium-badge { background: #fbbf24; color: #78350f; padding: 4px 12px; border-radius: 20px; font-size: 12px; font-weight: bold; display: inline-block; margin-left: 10px; }")
	sb.WriteString("</style>")
	sb.WriteString("</head>")
	sb.WriteString("<body>")
	sb.WriteString("<div class='container'>")

	sb.WriteString("<div class='header'>")
	sb.WriteString("<h1>🍪 Reporte Semanal Oreo <span class='premium-badge'>PREMIUM</span></h1>")
	sb.WriteString(fmt.Sprintf("<p>%s a %s | %s</p>",
		event.From.Format("2006-01-02"),
		event.To.Format("2006-01-02"),
		event.Branch,
	))
	sb.WriteString("</div>")

	sb.WriteString("<div class='content'>")
	sb.WriteString("<div class='summary'><p>")
	sb.WriteString(strings.ReplaceAll(summaryText, "\n", "<br>"))
	sb.WriteString("</p></div>")

	sb.WriteString("<div class='metrics'>")
	sb.WriteString(fmt.Sprintf("<div class='metric'><h3>Total Unidades</h3><p>%d</p></div>", aggregates.TotalUnits))
	sb.WriteString(fmt.Sprintf("<div class='metric'><h3>Total Ingresos</h3><p>S/ %.2f</p></div>", aggregates.TotalRevenue))
	if aggregates.TopSKU != nil {
		sb.WriteString(fmt.Sprintf("<div class='metric'><h3>SKU Top</h3><p>%s</p></div>", *aggregates.TopSKU))
	}
	if aggregates.TopBranch != nil && *aggregates.TopBranch != event.Branch {
		sb.WriteString(fmt.Sprintf("<div class='metric'><h3>Sucursal Top</h3><p>%s</p></div>", *aggregates.TopBranch))
	}
	sb.WriteString("</div>")

	if event.IncludeCharts {
		sb.WriteString("<div class='chart-container'>")
		sb.WriteString(fmt.Sprintf("<img src='%s' alt='Gráfico de Resumen' style='max-width: 100%%; height: auto; border-radius: 8px;'/>", buildChartURL(aggregates)))
		sb.WriteString("<p style='color: #64748b; font-size: 12px; margin-top: 8px;'>Gráfico generado automáticamente</p>")
		sb.WriteString("</div>")
	}

	sb.WriteString("</div>")

	sb.WriteString("<div class='footer'>")
	sb.WriteString("<p>🚀 Generado automáticamente por Oreo Insight Factory</p>")
	sb.WriteString("</div>")

	sb.WriteString("</div>")
	sb.WriteString("</body>")
	sb.WriteString("</html>")

	return sb.String()
}

// buildChartURL monta a configuração do gráfico de barras com as duas
// métricas principais.
func buildChartURL(aggregates *domain.SalesAggregates) string {
	chartConfig := fmt.Sprintf(
		"{type:'bar',data:{labels:['Unidades Vendidas','Ingresos (S/)'],datasets:[{label:'Métricas Principales',data:[%d,%.2f],backgroundColor:['#6B46C1','#805AD5']}]},options:{plugins:{legend:{display:false},title:{display:true,text:'Resumen de Ventas'}},scales:{y:{beginAtZero:true}}}}",
		aggregates.TotalUnits,
		aggregates.TotalRevenue,
	)

	return "https://quickchart.io/chart?c=" + url.QueryEscape(chartConfig) + "&width=600&height=300"
}
