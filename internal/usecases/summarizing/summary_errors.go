package summarizing

import "errors"

var (
	// ErrReportForbidden indica solicitação de relatório para sucursal alheia.
	ErrReportForbidden = errors.New("somente pode solicitar relatórios da própria sucursal")
	// ErrUnsupportedFormat indica um formato de relatório desconhecido.
	ErrUnsupportedFormat = errors.New("formato de relatório não suportado")
)
